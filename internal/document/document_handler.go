package document

import (
	"net/http"

	"github.com/nidhidattani13/ems/internal/rbac"
	"github.com/nidhidattani13/ems/internal/shared/apperror"
	"github.com/nidhidattani13/ems/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// ownerOrAdmin gates the employee-scoped document tree: an employee
// only reaches their own subtree, an admin reaches any.
func ownerOrAdmin(c *gin.Context) (string, bool) {
	employeeID := c.Param("id")
	if c.GetString("role") != rbac.RoleAdmin && c.GetString("user_id") != employeeID {
		writeServiceError(c, ErrNotDocumentOwner)
		return "", false
	}
	return employeeID, true
}

func (h *Handler) Upload(c *gin.Context) {
	employeeID, ok := ownerOrAdmin(c)
	if !ok {
		return
	}

	var req UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Upload(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Document uploaded successfully", resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	employeeID, ok := ownerOrAdmin(c)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Documents fetched successfully", resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	employeeID, ok := ownerOrAdmin(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), employeeID, c.Param("docId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Document fetched successfully", resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	employeeID, ok := ownerOrAdmin(c)
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), employeeID, c.Param("docId"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Document updated successfully", resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	employeeID, ok := ownerOrAdmin(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), employeeID, c.Param("docId")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Document deleted successfully", nil, nil)
}
