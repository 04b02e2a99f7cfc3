package leave

import (
	"github.com/nidhidattani13/ems/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", middleware.Authorize(enforcer, "leave_request", "create"), h.Submit)
		requests.GET("", middleware.Authorize(enforcer, "leave_request", "read"), h.ListAll)
		requests.GET("/mine", middleware.Authorize(enforcer, "leave_request", "read_self"), h.ListMine)
		requests.GET("/team", middleware.Authorize(enforcer, "leave_request", "team"), h.ListTeam)
		requests.GET("/:id", middleware.Authorize(enforcer, "leave_request", "read_self"), h.GetByID)
		requests.PUT("/:id", middleware.Authorize(enforcer, "leave_request", "update"), h.Update)
		requests.DELETE("/:id", middleware.Authorize(enforcer, "leave_request", "delete"), h.Delete)
	}
}
