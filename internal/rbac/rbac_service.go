package rbac

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(accountID, companyID int64) error
	Enforce(req EnforceRequest) (bool, error)

	ListRoles() ([]RoleResponse, error)
	GetRole(slug string) (*RoleResponse, error)
	ListPermissions() ([]PermissionResponse, error)
	UpdateRolePermissions(slug string, permIDs []int64) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.L().Named("rbac_service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

// domain encodes the tenant pair as a single casbin domain so policies
// from one company can never match another.
func domain(accountID, companyID int64) string {
	return fmt.Sprintf("%d:%d", accountID, companyID)
}

func (s *service) LoadCompanyPolicy(accountID, companyID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(accountID, companyID)
}

func (s *service) loadCompanyPolicyUnlocked(accountID, companyID int64) error {
	s.enforcer.ClearPolicy()

	dom := domain(accountID, companyID)

	// Grouping: user -> role slug, inside this tenant's domain only.
	userRoles, err := s.repo.GetUserRoles(accountID, companyID)
	if err != nil {
		return err
	}
	s.logger.Debug("rbac load policy",
		zap.Int64("account_id", accountID),
		zap.Int64("company_id", companyID),
		zap.Int("user_roles", len(userRoles)),
	)

	for _, ur := range userRoles {
		_, err := s.enforcer.AddGroupingPolicy(
			strconv.FormatInt(ur.UserID, 10),
			ur.RoleSlug,
			dom,
		)
		if err != nil {
			return err
		}
	}

	// Permission policy: the role catalogue is global, so every slug is
	// stamped into this domain.
	rolePerms, err := s.repo.GetRolePermissions()
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		_, err := s.enforcer.AddPolicy(
			rp.RoleSlug,
			dom,
			rp.Resource,
			rp.Action,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(req.AccountID, req.CompanyID); err != nil {
		return false, err
	}

	sub := strconv.FormatInt(req.UserID, 10)
	dom := domain(req.AccountID, req.CompanyID)

	allowed, err := s.enforcer.Enforce(sub, dom, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.Int64("user_id", req.UserID),
			zap.String("domain", dom),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.Int64("user_id", req.UserID),
		zap.String("domain", dom),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}

func (s *service) ListRoles() ([]RoleResponse, error) {
	roles, err := s.repo.ListRoles()
	if err != nil {
		return nil, err
	}

	result := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		perms, err := s.repo.GetPermissionsByRoleSlug(role.Slug)
		if err != nil {
			return nil, err
		}

		permLabels := make([]string, 0, len(perms))
		for _, p := range perms {
			permLabels = append(permLabels, p.Resource+":"+p.Action)
		}

		result = append(result, RoleResponse{
			Slug:        role.Slug,
			Name:        role.Name,
			Description: role.Description,
			Permissions: permLabels,
		})
	}

	return result, nil
}

func (s *service) GetRole(slug string) (*RoleResponse, error) {
	role, err := s.repo.GetRoleBySlug(slug)
	if err != nil {
		return nil, err
	}

	perms, err := s.repo.GetPermissionsByRoleSlug(role.Slug)
	if err != nil {
		return nil, err
	}

	permLabels := make([]string, 0, len(perms))
	for _, p := range perms {
		permLabels = append(permLabels, p.Resource+":"+p.Action)
	}

	return &RoleResponse{
		Slug:        role.Slug,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permLabels,
	}, nil
}

func (s *service) ListPermissions() ([]PermissionResponse, error) {
	perms, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}

	result := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		result = append(result, PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		})
	}
	return result, nil
}

func (s *service) UpdateRolePermissions(slug string, permIDs []int64) error {
	return s.repo.UpdateRolePermissions(slug, permIDs)
}
