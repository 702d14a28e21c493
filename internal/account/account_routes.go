package account

import (
	"proryx/internal/middleware"
	"proryx/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
) {
	// Public onboarding, throttled hard by IP.
	r.POST("/onboard", middleware.RateLimitByIP(0.2, 2), handler.Onboard)

	accounts := r.Group("/account")
	accounts.Use(middleware.AuthMiddleware(jwtSecret))
	accounts.Use(middleware.ExtractUserID())
	{
		accounts.GET("", handler.GetAccount)

		accounts.GET("/companies", handler.ListCompanies)

		accounts.POST("/companies",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "company", "manage"),
			handler.CreateCompany,
		)

		accounts.PUT("/companies/:id",
			middleware.RateLimitByUser(1, 3),
			rbac.Authorize(rbacService, "company", "manage"),
			handler.UpdateCompany,
		)
	}
}
