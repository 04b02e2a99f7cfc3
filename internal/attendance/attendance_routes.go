package attendance

import (
	"github.com/nidhidattani13/ems/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	att := r.Group("/attendance")
	att.Use(middleware.AuthMiddleware())
	{
		att.POST("/sign-in", middleware.Authorize(enforcer, "attendance", "sign"), h.SignIn)
		att.POST("/sign-out", middleware.Authorize(enforcer, "attendance", "sign"), h.SignOut)
		att.POST("/mark", middleware.Authorize(enforcer, "attendance", "sign"), h.Mark)
		att.GET("/my/today", middleware.Authorize(enforcer, "attendance", "read_self"), h.GetToday)
		att.GET("/my", middleware.Authorize(enforcer, "attendance", "read_self"), h.ListMine)

		att.GET("", middleware.Authorize(enforcer, "attendance", "read"), h.ListAll)
		att.POST("", middleware.Authorize(enforcer, "attendance", "create"), h.Create)
		att.GET("/:id", middleware.Authorize(enforcer, "attendance", "read"), h.GetByID)
		att.PUT("/:id", middleware.Authorize(enforcer, "attendance", "update"), h.Update)
		att.DELETE("/:id", middleware.Authorize(enforcer, "attendance", "delete"), h.Delete)
	}
}
