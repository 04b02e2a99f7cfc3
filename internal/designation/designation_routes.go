package designation

import (
	"github.com/nidhidattani13/ems/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	designations := r.Group("/designations")
	designations.Use(middleware.AuthMiddleware())
	{
		designations.GET("", middleware.Authorize(enforcer, "designation", "read"), h.GetAll)
		designations.POST("", middleware.Authorize(enforcer, "designation", "create"), h.Create)
		designations.GET("/:id", middleware.Authorize(enforcer, "designation", "read"), h.GetByID)
		designations.PUT("/:id", middleware.Authorize(enforcer, "designation", "update"), h.Update)
		designations.DELETE("/:id", middleware.Authorize(enforcer, "designation", "delete"), h.Delete)
	}
}
