package rbac

import (
	"proryx/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service, jwtSecret string) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(jwtSecret))
	{
		group.POST("/enforce", handler.Enforce)

		// Management
		group.GET("/roles", Authorize(service, "role", "read"), handler.ListRoles)
		group.GET("/roles/:slug", Authorize(service, "role", "read"), handler.GetRole)
		group.PUT("/roles/:slug/permissions", Authorize(service, "role", "manage"), handler.UpdateRolePermissions)

		group.GET("/permissions", Authorize(service, "role", "manage"), handler.ListPermissions)
	}
}
