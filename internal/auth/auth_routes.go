package auth

import (
	"github.com/nidhidattani13/ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")
	// Credential endpoints get a tighter per-IP budget than the rest of
	// the API.
	authGroup.Use(middleware.RateLimitByIP(rate.Limit(1), 5))
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), h.Me)
	}
}
