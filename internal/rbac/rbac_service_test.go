package rbac

import (
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
)

// =========================================
// Mock Repository
// =========================================

type mockRepo struct{}

func (m *mockRepo) GetUserRoles(accountID, companyID int64) ([]UserRoleRow, error) {
	// User 7 is a manager only inside tenant (1, 1).
	if accountID == 1 && companyID == 1 {
		return []UserRoleRow{
			{UserID: 7, RoleSlug: "manager"},
		}, nil
	}
	return nil, nil
}

func (m *mockRepo) GetRolePermissions() ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{RoleSlug: "manager", Resource: "property", Action: "read"},
		{RoleSlug: "manager", Resource: "property", Action: "write"},
		{RoleSlug: "viewer", Resource: "property", Action: "read"},
	}, nil
}

func (m *mockRepo) ListRoles() ([]RoleRow, error) {
	return []RoleRow{
		{ID: 1, Slug: "manager", Name: "Manager"},
		{ID: 2, Slug: "viewer", Name: "Viewer"},
	}, nil
}

func (m *mockRepo) GetRoleBySlug(slug string) (*RoleRow, error) {
	return &RoleRow{ID: 1, Slug: slug, Name: "Manager"}, nil
}

func (m *mockRepo) ListPermissions() ([]PermissionRow, error) {
	return nil, nil
}

func (m *mockRepo) GetPermissionsByRoleSlug(slug string) ([]PermissionRow, error) {
	return []PermissionRow{
		{ID: 1, Resource: "property", Action: "read"},
	}, nil
}

func (m *mockRepo) UpdateRolePermissions(slug string, permIDs []int64) error {
	return nil
}

// =========================================
// Helper: Test Enforcer
// =========================================

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	return e
}

// =========================================
// TEST: Load + Enforce
// =========================================

func TestRBACService_Enforce(t *testing.T) {
	repo := &mockRepo{}
	enforcer := newTestEnforcer(t)

	service := NewService(repo, enforcer)

	err := service.LoadCompanyPolicy(1, 1)
	assert.NoError(t, err)

	// Should allow
	allowed, err := service.Enforce(EnforceRequest{
		UserID:    7,
		AccountID: 1,
		CompanyID: 1,
		Resource:  "property",
		Action:    "read",
	})

	assert.NoError(t, err)
	assert.True(t, allowed)

	// Should deny an action the role does not carry
	denied, err := service.Enforce(EnforceRequest{
		UserID:    7,
		AccountID: 1,
		CompanyID: 1,
		Resource:  "renter",
		Action:    "delete",
	})

	assert.NoError(t, err)
	assert.False(t, denied)
}

func TestRBACService_Enforce_OtherTenantDenied(t *testing.T) {
	repo := &mockRepo{}
	enforcer := newTestEnforcer(t)

	service := NewService(repo, enforcer)

	// Same user id, but the grouping only exists inside tenant (1, 1).
	// Sibling company under the same account gets nothing.
	allowed, err := service.Enforce(EnforceRequest{
		UserID:    7,
		AccountID: 1,
		CompanyID: 2,
		Resource:  "property",
		Action:    "read",
	})

	assert.NoError(t, err)
	assert.False(t, allowed)

	// Different account entirely.
	allowed, err = service.Enforce(EnforceRequest{
		UserID:    7,
		AccountID: 2,
		CompanyID: 1,
		Resource:  "property",
		Action:    "read",
	})

	assert.NoError(t, err)
	assert.False(t, allowed)
}
