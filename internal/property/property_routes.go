package property

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

	properties := r.Group("/properties")
	properties.Use(middleware.AuthMiddleware(jwtSecret))
	properties.Use(middleware.ExtractUserID())
	properties.Use(middleware.ContextLogger(logger))
	{
		properties.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "property", "read"),
			handler.GetAll,
		)

		properties.GET("/options",
			middleware.RateLimitByUser(5, 20),
			rbac.Authorize(rbacService, "property", "read"),
			handler.GetOptions,
		)

		properties.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "property", "read"),
			handler.GetByID,
		)

		if redisClient != nil {
			properties.POST("",
				middleware.RateLimitByUser(0.5, 2),
				middleware.Idempotency(redisClient),
				rbac.Authorize(rbacService, "property", "write"),
				handler.Create,
			)
		} else {
			properties.POST("",
				middleware.RateLimitByUser(0.5, 2),
				rbac.Authorize(rbacService, "property", "write"),
				handler.Create,
			)
		}

		properties.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "property", "write"),
			handler.Update,
		)

		properties.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "property", "manage"),
			handler.Delete,
		)

		// Units nest under their property.
		properties.GET("/:id/units",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "property", "read"),
			handler.ListUnits,
		)

		properties.POST("/:id/units",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "property", "write"),
			handler.CreateUnit,
		)

		properties.PUT("/:id/units/:unitId",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "property", "write"),
			handler.UpdateUnit,
		)

		properties.DELETE("/:id/units/:unitId",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "property", "manage"),
			handler.DeleteUnit,
		)
	}
}
