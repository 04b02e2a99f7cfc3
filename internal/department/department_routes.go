package department

import (
	"github.com/nidhidattani13/ems/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.Authorize(enforcer, "department", "read"), h.GetAll)
		departments.POST("", middleware.Authorize(enforcer, "department", "create"), h.Create)
		departments.GET("/:id", middleware.Authorize(enforcer, "department", "read"), h.GetByID)
		departments.PUT("/:id", middleware.Authorize(enforcer, "department", "update"), h.Update)
		departments.DELETE("/:id", middleware.Authorize(enforcer, "department", "delete"), h.Delete)
	}
}
