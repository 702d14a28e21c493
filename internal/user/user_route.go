package user

import (
	"proryx/internal/middleware"
	"proryx/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	logger *zap.Logger,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(jwtSecret))
	users.Use(middleware.ExtractUserID())
	users.Use(middleware.ContextLogger(logger))
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "user", "read"),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "user", "read"),
			handler.GetByID,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "user", "manage"),
			handler.Create,
		)

		users.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "user", "manage"),
			handler.Update,
		)

		users.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "user", "manage"),
			handler.Delete,
		)

		users.POST("/:id/change-password",
			middleware.RateLimitByUser(0.2, 1),
			handler.ChangePassword,
		)
	}
}
