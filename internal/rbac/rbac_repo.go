package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetUserRoles(accountID, companyID int64) ([]UserRoleRow, error)
	GetRolePermissions() ([]RolePermissionRow, error)

	// Management
	ListRoles() ([]RoleRow, error)
	GetRoleBySlug(slug string) (*RoleRow, error)

	ListPermissions() ([]PermissionRow, error)
	GetPermissionsByRoleSlug(slug string) ([]PermissionRow, error)
	UpdateRolePermissions(slug string, permIDs []int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Roles are a fixed global catalogue of slugs. Which user holds which
// role lives on the users table inside each tenant.
type RoleRow struct {
	ID          int64 `gorm:"primaryKey"`
	Slug        string
	Name        string
	Description string
}

func (RoleRow) TableName() string { return "roles" }

type PermissionRow struct {
	ID       int64 `gorm:"primaryKey"`
	Resource string
	Action   string
	Label    string
	Category string
}

func (PermissionRow) TableName() string { return "permissions" }

type UserRoleRow struct {
	UserID   int64
	RoleSlug string
}

type RolePermissionRow struct {
	RoleSlug string
	Resource string
	Action   string
}

func (r *repository) GetUserRoles(accountID, companyID int64) ([]UserRoleRow, error) {
	var result []UserRoleRow

	err := r.db.
		Table("users").
		Select("users.id AS user_id, users.role_slug").
		Where("users.account_id = ? AND users.company_id = ?", accountID, companyID).
		Scan(&result).Error

	return result, err
}

func (r *repository) GetRolePermissions() ([]RolePermissionRow, error) {
	var result []RolePermissionRow

	err := r.db.
		Table("role_permissions").
		Select("roles.slug AS role_slug, permissions.resource, permissions.action").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Scan(&result).Error

	return result, err
}

func (r *repository) ListRoles() ([]RoleRow, error) {
	var result []RoleRow
	err := r.db.Order("id").Find(&result).Error
	return result, err
}

func (r *repository) GetRoleBySlug(slug string) (*RoleRow, error) {
	var result RoleRow
	err := r.db.Where("slug = ?", slug).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) ListPermissions() ([]PermissionRow, error) {
	var result []PermissionRow
	err := r.db.Order("category, label").Find(&result).Error
	return result, err
}

func (r *repository) GetPermissionsByRoleSlug(slug string) ([]PermissionRow, error) {
	var result []PermissionRow
	err := r.db.
		Table("permissions").
		Select("permissions.*").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Where("roles.slug = ?", slug).
		Scan(&result).Error
	return result, err
}

func (r *repository) UpdateRolePermissions(slug string, permIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		role := RoleRow{}
		if err := tx.Where("slug = ?", slug).First(&role).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM role_permissions WHERE role_id = ?", role.ID).Error; err != nil {
			return err
		}

		for _, pID := range permIDs {
			if err := tx.Exec("INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)", role.ID, pID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
