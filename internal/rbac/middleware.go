package rbac

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authorize is a middleware factory. It reads the identity set by the
// auth middleware and asks casbin whether the user's role in this
// tenant allows resource:action.
func Authorize(service Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok1 := c.Get("user_id")
		accountID, ok2 := c.Get("account_id")
		companyID, ok3 := c.Get("company_id")

		if !ok1 || !ok2 || !ok3 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "missing auth context",
			})
			c.Abort()
			return
		}

		req := EnforceRequest{
			UserID:    userID.(int64),
			AccountID: accountID.(int64),
			CompanyID: companyID.(int64),
			Resource:  resource,
			Action:    action,
		}

		allowed, err := service.Enforce(req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
