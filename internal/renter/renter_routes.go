package renter

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

	renters := r.Group("/renters")
	renters.Use(middleware.AuthMiddleware(jwtSecret))
	renters.Use(middleware.ExtractUserID())
	renters.Use(middleware.ContextLogger(logger))
	{
		renters.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "renter", "read"),
			handler.GetAll,
		)

		renters.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "renter", "read"),
			handler.GetByID,
		)

		// Creation is retried by clients, so it runs behind the
		// idempotency lock when redis is wired in.
		if redisClient != nil {
			renters.POST("",
				middleware.RateLimitByUser(0.5, 2),
				middleware.Idempotency(redisClient),
				rbac.Authorize(rbacService, "renter", "write"),
				handler.Create,
			)
		} else {
			renters.POST("",
				middleware.RateLimitByUser(0.5, 2),
				rbac.Authorize(rbacService, "renter", "write"),
				handler.Create,
			)
		}

		renters.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "renter", "write"),
			handler.Update,
		)

		renters.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "renter", "manage"),
			handler.Delete,
		)

		// Blacklisting is a managed state change, not a plain update.
		renters.POST("/:id/blacklist",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "renter", "manage"),
			handler.Blacklist,
		)

		renters.DELETE("/:id/blacklist",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "renter", "manage"),
			handler.Unblacklist,
		)

		renters.POST("/:id/kyc/review",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "renter", "write"),
			handler.RequestKYCReview,
		)

		renters.GET("/:id/contacts",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "renter", "read"),
			handler.ListContacts,
		)

		renters.POST("/:id/contacts",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "renter", "write"),
			handler.AddContact,
		)

		renters.PUT("/:id/contacts/:contactId",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "renter", "write"),
			handler.UpdateContact,
		)

		renters.DELETE("/:id/contacts/:contactId",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "renter", "write"),
			handler.RemoveContact,
		)

		renters.GET("/:id/documents",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "renter", "read"),
			handler.ListDocuments,
		)

		renters.POST("/:id/documents",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "renter", "write"),
			handler.AddDocument,
		)

		renters.POST("/:id/documents/:docId/verify",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "renter", "manage"),
			handler.VerifyDocument,
		)

		renters.POST("/:id/documents/:docId/reject",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "renter", "manage"),
			handler.RejectDocument,
		)

		renters.DELETE("/:id/documents/:docId",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "renter", "write"),
			handler.RemoveDocument,
		)
	}
}
