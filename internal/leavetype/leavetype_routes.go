package leavetype

import (
	"github.com/nidhidattani13/ems/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	leaveTypes := r.Group("/leave-types")
	leaveTypes.Use(middleware.AuthMiddleware())
	{
		leaveTypes.GET("", middleware.Authorize(enforcer, "leave_type", "read"), h.GetAll)
		leaveTypes.POST("", middleware.Authorize(enforcer, "leave_type", "create"), h.Create)
		leaveTypes.GET("/:id", middleware.Authorize(enforcer, "leave_type", "read"), h.GetByID)
		leaveTypes.PUT("/:id", middleware.Authorize(enforcer, "leave_type", "update"), h.Update)
		leaveTypes.DELETE("/:id", middleware.Authorize(enforcer, "leave_type", "delete"), h.Delete)
	}
}
