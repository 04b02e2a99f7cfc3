package leave

import (
	"net/http"

	"github.com/nidhidattani13/ems/internal/rbac"
	"github.com/nidhidattani13/ems/internal/shared/apperror"
	"github.com/nidhidattani13/ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
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

func (h *Handler) Submit(c *gin.Context) {
	var req CreateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Leave request submitted successfully", resp, nil)
}

// Update handles PUT /leave-requests/:id for both callers: a body
// carrying a decision is an approval/rejection; anything else is the
// owner editing a pending request.
func (h *Handler) Update(c *gin.Context) {
	var probe struct {
		Decision string `json:"decision"`
	}
	if err := c.ShouldBindBodyWith(&probe, binding.JSON); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if probe.Decision != "" {
		h.decide(c)
		return
	}

	var req UpdateLeaveRequestRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Edit(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Leave request updated successfully", resp, nil)
}

func (h *Handler) decide(c *gin.Context) {
	var req DecideLeaveRequestRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	// Admins decide any request; everyone else goes through the
	// direct-report check.
	teamScoped := c.GetString("role") != rbac.RoleAdmin

	resp, err := h.service.Decide(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.Decision, teamScoped)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Leave request decided successfully", resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Leave request fetched successfully", resp, nil)
}

func (h *Handler) ListAll(c *gin.Context) {
	resp, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Leave requests fetched successfully", resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	resp, err := h.service.ListMine(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Leave requests fetched successfully", resp, nil)
}

func (h *Handler) ListTeam(c *gin.Context) {
	resp, err := h.service.ListTeam(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Team leave requests fetched successfully", resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Leave request deleted successfully", nil, nil)
}
