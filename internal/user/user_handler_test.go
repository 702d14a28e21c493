package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"proryx/internal/middleware"
	"proryx/internal/tenancy"
	"proryx/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// =========================================
// Router helper
// =========================================

// setupUserRouter wires the handler over the in-memory repository and
// stubs the keys the auth middleware would normally set.
func setupUserRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := user.NewHandler(user.NewService(newFakeUserRepo()))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		tc, _ := tenancy.NewContext(1, 1)
		c.Set(middleware.KeyUserID, int64(7))
		c.Set(middleware.KeyAccountID, int64(1))
		c.Set(middleware.KeyCompanyID, int64(1))
		c.Set(middleware.KeyRole, "admin")
		c.Set(middleware.KeyTenant, tc)
		c.Next()
	})

	router.POST("/users", handler.Create)
	router.GET("/users", handler.GetAll)
	router.GET("/users/:id", handler.GetByID)
	router.PUT("/users/:id", handler.Update)
	router.DELETE("/users/:id", handler.Delete)

	return router
}

// =========================================
// Tests
// =========================================

func TestUserHandler_Create(t *testing.T) {
	router := setupUserRouter(t)

	body, _ := json.Marshal(user.CreateUserRequest{
		Email:    "ana@example.com",
		Password: "supersecret",
		FullName: "Ana",
		RoleSlug: user.RoleManager,
	})

	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Ok   bool              `json:"ok"`
		Data user.UserResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)
	assert.Equal(t, "ana@example.com", envelope.Data.Email)
	assert.NotEmpty(t, envelope.Data.UUID)
}

func TestUserHandler_Create_ValidationError(t *testing.T) {
	router := setupUserRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "not-an-email"})

	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_GetByID_NotFound(t *testing.T) {
	router := setupUserRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/users/22222222-2222-2222-2222-222222222222", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_GetAll_Pagination(t *testing.T) {
	router := setupUserRouter(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		body, _ := json.Marshal(user.CreateUserRequest{
			Email:    email,
			Password: "supersecret",
			FullName: "User " + email,
			RoleSlug: user.RoleViewer,
		})
		req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	req, _ := http.NewRequest(http.MethodGet, "/users?page=1&page_size=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Ok   bool                `json:"ok"`
		Data []user.UserResponse `json:"data"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
	assert.Equal(t, int64(3), envelope.Meta.Total)
	assert.Equal(t, 2, envelope.Meta.TotalPages)
}

func TestUserHandler_MissingTenantContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := user.NewHandler(user.NewService(newFakeUserRepo()))

	router := gin.New()
	// No auth middleware, no tenant keys.
	router.GET("/users", handler.GetAll)

	req, _ := http.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
