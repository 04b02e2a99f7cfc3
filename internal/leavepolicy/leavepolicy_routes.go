package leavepolicy

import (
	"github.com/nidhidattani13/ems/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	policies := r.Group("/leave-policies")
	policies.Use(middleware.AuthMiddleware())
	{
		policies.GET("", middleware.Authorize(enforcer, "leave_policy", "read"), h.GetAll)
		policies.POST("", middleware.Authorize(enforcer, "leave_policy", "create"), h.Create)
		policies.GET("/:id", middleware.Authorize(enforcer, "leave_policy", "read"), h.GetByID)
		policies.PUT("/:id", middleware.Authorize(enforcer, "leave_policy", "update"), h.Update)
		policies.DELETE("/:id", middleware.Authorize(enforcer, "leave_policy", "delete"), h.Delete)
	}
}
