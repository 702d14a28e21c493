package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"proryx/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func idempotencyRouter(rdb *redis.Client, accountID, companyID int64, userID string, handled *int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/renters",
		func(c *gin.Context) {
			if userID != "" {
				c.Set(middleware.KeyAccountID, accountID)
				c.Set(middleware.KeyCompanyID, companyID)
				c.Set("user_id_validated", userID)
			}
			c.Next()
		},
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			*handled++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)
	return router
}

func postWithKey(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/renters", strings.NewReader("{}"))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_KeyIsScopedToTenantAndUser(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	handled := 0
	router := idempotencyRouter(rdb, 1, 1, "7", &handled)

	// The cache and lock keys carry the tenant pair and the user, so a
	// retry of the same header from anyone else never sees this lock.
	redisMock.ExpectGet("idemp:/renters:1:1:7:k1").RedisNil()
	redisMock.ExpectSetNX("idemp:/renters:1:1:7:k1:lock", "locked", 30*time.Second).SetVal(true)

	w := postWithKey(router, "k1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, handled)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestIdempotency_SameKeyFromAnotherUserIsNotBlocked(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	handled := 0
	router := idempotencyRouter(rdb, 2, 9, "31", &handled)

	// The first user's lock lives under a different key, so this SetNX
	// succeeds instead of answering 409.
	redisMock.ExpectGet("idemp:/renters:2:9:31:k1").RedisNil()
	redisMock.ExpectSetNX("idemp:/renters:2:9:31:k1:lock", "locked", 30*time.Second).SetVal(true)

	w := postWithKey(router, "k1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, handled)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicateIsRejected(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	handled := 0
	router := idempotencyRouter(rdb, 1, 1, "7", &handled)

	redisMock.ExpectGet("idemp:/renters:1:1:7:k1").RedisNil()
	redisMock.ExpectSetNX("idemp:/renters:1:1:7:k1:lock", "locked", 30*time.Second).SetVal(false)

	w := postWithKey(router, "k1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, handled)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	handled := 0
	router := idempotencyRouter(rdb, 1, 1, "7", &handled)

	redisMock.ExpectGet("idemp:/renters:1:1:7:k1").SetVal(`{"uuid":"abc"}`)

	w := postWithKey(router, "k1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abc")
	assert.Equal(t, 0, handled)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestIdempotency_SkipsUnauthenticatedRequests(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	handled := 0
	router := idempotencyRouter(rdb, 0, 0, "", &handled)

	// No validated user, no lock: the middleware must not build a key
	// shared by every caller of the route.
	w := postWithKey(router, "k1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, handled)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestIdempotency_SkipsRequestsWithoutKey(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	handled := 0
	router := idempotencyRouter(rdb, 1, 1, "7", &handled)

	w := postWithKey(router, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, handled)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
