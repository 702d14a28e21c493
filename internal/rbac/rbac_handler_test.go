package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// =========================================
// Mock Service
// =========================================

type mockService struct{}

func (m *mockService) LoadCompanyPolicy(accountID, companyID int64) error {
	return nil
}

func (m *mockService) Enforce(req EnforceRequest) (bool, error) {
	if req.Resource == "property" && req.Action == "read" {
		return true, nil
	}
	return false, nil
}

func (m *mockService) ListRoles() ([]RoleResponse, error) {
	return []RoleResponse{{Slug: "manager", Name: "Manager"}}, nil
}

func (m *mockService) GetRole(slug string) (*RoleResponse, error) {
	return &RoleResponse{Slug: slug, Name: "Manager"}, nil
}

func (m *mockService) ListPermissions() ([]PermissionResponse, error) {
	return nil, nil
}

func (m *mockService) UpdateRolePermissions(slug string, permIDs []int64) error {
	return nil
}

// =========================================
// TEST: Handler Enforce
// =========================================

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := &mockService{}
	handler := NewHandler(service)

	router := gin.Default()
	router.POST("/rbac/enforce", handler.Enforce)

	body := EnforceRequest{
		UserID:    7,
		AccountID: 1,
		CompanyID: 1,
		Resource:  "property",
		Action:    "read",
	}

	jsonBody, _ := json.Marshal(body)

	req, _ := http.NewRequest(
		http.MethodPost,
		"/rbac/enforce",
		bytes.NewBuffer(jsonBody),
	)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Ok   bool            `json:"ok"`
		Data EnforceResponse `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &envelope)
	assert.NoError(t, err)

	assert.True(t, envelope.Ok)
	assert.True(t, envelope.Data.Allowed)
}

func TestHandler_Enforce_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{})

	router := gin.Default()
	router.POST("/rbac/enforce", handler.Enforce)

	jsonBody, _ := json.Marshal(EnforceRequest{UserID: 7})

	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
