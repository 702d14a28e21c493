package middleware

import (
	"fmt"
	"net/http"
	"strings"

	autherrors "proryx/internal/auth/errors"
	"proryx/internal/shared/response"
	"proryx/internal/tenancy"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Gin context keys populated by AuthMiddleware.
const (
	KeyUserID    = "user_id"
	KeyAccountID = "account_id"
	KeyCompanyID = "company_id"
	KeyRole      = "role"
	KeyTenant    = "tenant_ctx"
)

// claimInt64 reads a numeric claim. JSON numbers arrive as float64.
func claimInt64(claims jwt.MapClaims, name string) (int64, bool) {
	v, ok := claims[name].(float64)
	if !ok {
		return 0, false
	}
	return int64(v), true
}

// AuthMiddleware validates the bearer token and binds the tenant pair
// from its claims. A token that does not carry both account_id and
// company_id as positive integers is rejected outright.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claimInt64(claims, "user_id")
		if !ok || userID <= 0 {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		accountID, ok := claimInt64(claims, "account_id")
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Account ID not found in token", nil)
			c.Abort()
			return
		}

		companyID, ok := claimInt64(claims, "company_id")
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Company ID not found in token", nil)
			c.Abort()
			return
		}

		tc, err := tenancy.NewContext(accountID, companyID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token carries an unbound tenant context", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		c.Set(KeyUserID, userID)
		c.Set(KeyAccountID, accountID)
		c.Set(KeyCompanyID, companyID)
		c.Set(KeyRole, role)
		c.Set(KeyTenant, tc)

		c.Next()
	}
}

// TenantFromGin returns the tenant context bound by AuthMiddleware.
func TenantFromGin(c *gin.Context) (tenancy.Context, bool) {
	v, ok := c.Get(KeyTenant)
	if !ok {
		return tenancy.Context{}, false
	}
	tc, ok := v.(tenancy.Context)
	return tc, ok
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(KeyRole)
		if !exists {
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		isAllowed := false
		for _, role := range allowedRoles {
			if userRole == role {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
