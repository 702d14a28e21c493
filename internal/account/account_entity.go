package account

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Account is the outer tenant boundary. It is a global table, its id
// is a plain sequence, not a per-tenant one.
type Account struct {
	ID     int64     `gorm:"primaryKey" json:"-"`
	UUID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	Name   string    `gorm:"type:varchar(150);not null"`
	Status string    `gorm:"type:varchar(20);not null;default:'active'"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Companies []Company `gorm:"foreignKey:AccountID"`
}

func (Account) TableName() string {
	return "accounts"
}

// Company is the inner boundary. Also global: the pair (account_id,
// company.id) is what every tenant-scoped row carries.
type Company struct {
	ID        int64     `gorm:"primaryKey" json:"-"`
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	AccountID int64     `gorm:"not null;index;uniqueIndex:uniq_account_company_name,priority:1" json:"-"`
	Name      string    `gorm:"type:varchar(150);not null;uniqueIndex:uniq_account_company_name,priority:2"`
	LegalName string    `gorm:"type:varchar(200)"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
