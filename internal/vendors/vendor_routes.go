package vendor

import (
	"proryx/internal/middleware"
	"proryx/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	logger *zap.Logger,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	vendors := r.Group("/vendors")
	vendors.Use(middleware.AuthMiddleware(jwtSecret))
	vendors.Use(middleware.ExtractUserID())
	vendors.Use(middleware.ContextLogger(logger))
	{
		vendors.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "vendor", "read"),
			handler.GetAll,
		)

		vendors.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "vendor", "read"),
			handler.GetByID,
		)

		if redisClient != nil {
			vendors.POST("",
				middleware.RateLimitByUser(0.5, 2),
				middleware.Idempotency(redisClient),
				rbac.Authorize(rbacService, "vendor", "write"),
				handler.Create,
			)
		} else {
			vendors.POST("",
				middleware.RateLimitByUser(0.5, 2),
				rbac.Authorize(rbacService, "vendor", "write"),
				handler.Create,
			)
		}

		vendors.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "vendor", "write"),
			handler.Update,
		)

		vendors.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "vendor", "manage"),
			handler.Delete,
		)
	}
}
