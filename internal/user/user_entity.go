package user

import (
	"time"

	"proryx/internal/tenancy"

	"gorm.io/gorm"
)

// Role slugs are a fixed catalogue, seeded once and shared by every
// tenant. Assignment is per user, enforcement goes through casbin.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleLeasing    = "leasing"
	RoleOperations = "operations"
	RoleFinance    = "finance"
	RoleViewer     = "viewer"
)

func ValidRole(slug string) bool {
	switch slug {
	case RoleAdmin, RoleManager, RoleLeasing, RoleOperations, RoleFinance, RoleViewer:
		return true
	}
	return false
}

type User struct {
	tenancy.Key

	// Email is unique per tenant (uniq_tenant_user_email in
	// db/schema.sql), the same address may exist under several
	// companies.
	Email        string `gorm:"type:varchar(255);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string `gorm:"type:varchar(150);not null"`
	RoleSlug     string `gorm:"type:varchar(30);not null"`
	IsActive     bool   `gorm:"not null;default:true"`

	FailedLoginAttempts int        `gorm:"not null;default:0"`
	LockedUntil         *time.Time `gorm:"index"`
	LastLoginAt         *time.Time

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
