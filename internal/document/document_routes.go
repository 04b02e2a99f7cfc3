package document

import (
	"github.com/nidhidattani13/ems/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	docs := r.Group("/employees/:id/documents")
	docs.Use(middleware.AuthMiddleware())
	{
		docs.POST("", middleware.Authorize(enforcer, "document", "create"), h.Upload)
		docs.GET("", middleware.Authorize(enforcer, "document", "read"), h.List)
		docs.GET("/:docId", middleware.Authorize(enforcer, "document", "read"), h.Get)
		docs.PUT("/:docId", middleware.Authorize(enforcer, "document", "update"), h.Update)
		docs.DELETE("/:docId", middleware.Authorize(enforcer, "document", "delete"), h.Delete)
	}
}
