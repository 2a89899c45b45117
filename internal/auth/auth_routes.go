package auth

import (
	"leavetrack/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		// Credential endpoints are brute-force targets.
		loginLimit := middleware.RateLimitByIP(rate.Limit(1), 5)

		authGroup.POST("/login", loginLimit, handler.Login)
		authGroup.POST("/refresh", loginLimit, handler.Refresh)
		authGroup.POST("/register", handler.Register)

		authGroup.POST("/logout", middleware.AuthMiddleware(), handler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.GetMe)
	}
}
