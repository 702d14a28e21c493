package auth

import (
	"proryx/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	group := r.Group("/auth")
	{
		// Brute force protection sits in front of the lockout counter.
		group.POST("/login", middleware.RateLimitByIP(1, 5), handler.Login)
		group.POST("/refresh", middleware.RateLimitByIP(1, 5), handler.Refresh)
		group.POST("/logout", handler.Logout)

		group.GET("/me", middleware.AuthMiddleware(jwtSecret), handler.Me)
	}
}
