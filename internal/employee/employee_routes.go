package employee

import (
	"github.com/nidhidattani13/ems/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.Authorize(enforcer, "employee", "read"), h.GetAll)
		employees.POST("", middleware.Authorize(enforcer, "employee", "create"), h.Create)
		employees.GET("/:id", middleware.Authorize(enforcer, "employee", "read"), h.GetByID)
		employees.PUT("/:id", middleware.Authorize(enforcer, "employee", "update"), h.Update)
		employees.DELETE("/:id", middleware.Authorize(enforcer, "employee", "delete"), h.Delete)
	}
}
