package face

import (
	"github.com/nidhidattani13/ems/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	faces := r.Group("/face")
	faces.Use(middleware.AuthMiddleware())
	{
		faces.POST("/enroll", middleware.Authorize(enforcer, "face", "enroll"), h.Enroll)
		faces.POST("/recognize", middleware.Authorize(enforcer, "face", "recognize"), h.Recognize)
		faces.GET("", middleware.Authorize(enforcer, "face", "read"), h.List)
	}
}
