package middleware

import (
	"net/http"
	"strconv"

	"proryx/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ExtractUserID re-validates the user id set by AuthMiddleware and
// exposes it as a string for logging and idempotency keys.
func ExtractUserID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, exists := ctx.Get(KeyUserID)
		if !exists {
			response.Error(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "User is not authenticated", nil)
			ctx.Abort()
			return
		}

		uid, ok := userID.(int64)
		if !ok || uid <= 0 {
			response.Error(ctx, http.StatusUnauthorized, "INVALID_USER_ID", "User id has an invalid format", nil)
			ctx.Abort()
			return
		}

		ctx.Set("user_id_validated", strconv.FormatInt(uid, 10))
		ctx.Next()
	}
}
