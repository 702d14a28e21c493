package renter_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"proryx/internal/middleware"
	"proryx/internal/renter"
	"proryx/internal/tenancy"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

// =========================================
// Router helper
// =========================================

// setupRenterRouter wires the handler over the in-memory repository and
// stubs the keys the auth middleware would normally set.
func setupRenterRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, mock := setupGorm(t)
	handler := renter.NewHandler(renter.NewService(gdb, newFakeRenterRepo(), &fakeOutbox{}))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		tc, _ := tenancy.NewContext(1, 1)
		c.Set(middleware.KeyUserID, int64(7))
		c.Set(middleware.KeyAccountID, int64(1))
		c.Set(middleware.KeyCompanyID, int64(1))
		c.Set(middleware.KeyRole, "manager")
		c.Set(middleware.KeyTenant, tc)
		c.Next()
	})

	router.POST("/renters", handler.Create)
	router.GET("/renters", handler.GetAll)
	router.GET("/renters/:id", handler.GetByID)
	router.POST("/renters/:id/blacklist", handler.Blacklist)

	return router, mock
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// =========================================
// Tests
// =========================================

func TestRenterHandler_Create(t *testing.T) {
	router, mock := setupRenterRouter(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	w := postJSON(t, router, "/renters", renter.CreateRenterRequest{
		RenterCode: "RNT-001",
		RenterType: renter.TypeIndividual,
		FirstName:  "Lina",
		LastName:   "Hart",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Ok   bool                  `json:"ok"`
		Data renter.RenterResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)
	assert.Equal(t, "RNT-001", envelope.Data.RenterCode)
	assert.Equal(t, renter.KYCNotStarted, envelope.Data.KYCStatus)
	assert.NotEmpty(t, envelope.Data.UUID)
}

func TestRenterHandler_Create_ValidationError(t *testing.T) {
	router, _ := setupRenterRouter(t)

	w := postJSON(t, router, "/renters", map[string]string{
		"renter_type": renter.TypeIndividual,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Ok    bool `json:"ok"`
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Ok)
	assert.NotNil(t, envelope.Error)
}

func TestRenterHandler_GetByID_NotFound(t *testing.T) {
	router, _ := setupRenterRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/renters/79b2e7a4-6f5e-4f9e-b7d1-0a4fefb2c001", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenterHandler_Blacklist_RequiresReason(t *testing.T) {
	router, mock := setupRenterRouter(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	w := postJSON(t, router, "/renters", renter.CreateRenterRequest{
		RenterCode: "RNT-001",
		RenterType: renter.TypeIndividual,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data renter.RenterResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	w = postJSON(t, router, "/renters/"+envelope.Data.UUID+"/blacklist", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/renters/"+envelope.Data.UUID+"/blacklist", renter.BlacklistRequest{
		Reason: "chronic arrears",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var blacklisted struct {
		Data renter.RenterResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &blacklisted))
	assert.Equal(t, renter.StatusBlacklisted, blacklisted.Data.Status)
}

func TestRenterHandler_MissingTenantContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb, _ := setupGorm(t)
	handler := renter.NewHandler(renter.NewService(gdb, newFakeRenterRepo(), &fakeOutbox{}))

	router := gin.New()
	router.GET("/renters", handler.GetAll)

	req, _ := http.NewRequest(http.MethodGet, "/renters", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRenterHandler_Create_CompletesIdempotencyContract(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb, mock := setupGorm(t)

	rdb, redisMock := redismock.NewClientMock()
	handler := renter.NewHandlerWithRedis(renter.NewService(gdb, newFakeRenterRepo(), &fakeOutbox{}), rdb)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		tc, _ := tenancy.NewContext(1, 1)
		c.Set(middleware.KeyUserID, int64(7))
		c.Set(middleware.KeyTenant, tc)
		c.Set("idempotency_cache_key", "idemp:/renters:1:1:7:k1")
		c.Set("idempotency_lock_key", "idemp:/renters:1:1:7:k1:lock")
		c.Next()
	})
	router.POST("/renters", handler.Create)

	mock.ExpectBegin()
	mock.ExpectCommit()

	// The created renter carries a fresh uuid, so only the key and
	// expiry are pinned down. The lock is released after the cache is
	// filled.
	redisMock.Regexp().ExpectSet("idemp:/renters:1:1:7:k1", `.*`, 24*time.Hour).SetVal("OK")
	redisMock.ExpectDel("idemp:/renters:1:1:7:k1:lock").SetVal(1)

	w := postJSON(t, router, "/renters", renter.CreateRenterRequest{
		RenterCode: "RNT-777",
		RenterType: renter.TypeIndividual,
		FirstName:  "Idem",
		LastName:   "Potent",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
