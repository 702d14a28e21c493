package vendor

import (
	"time"

	"proryx/internal/tenancy"

	"gorm.io/gorm"
)

const (
	TypeIndividual = "individual"
	TypeCompany    = "company"

	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

func ValidVendorType(s string) bool {
	return s == TypeIndividual || s == TypeCompany
}

func ValidVendorStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusSuspended
}

// VendorCode is unique per tenant, covered by the index
// uniq_tenant_vendor_code on (account_id, company_id, vendor_code)
// declared in db/schema.sql.
type Vendor struct {
	tenancy.Key

	VendorCode string `gorm:"type:varchar(30);not null;index"`
	VendorName string `gorm:"type:varchar(255);not null"`
	VendorType string `gorm:"type:varchar(20);not null;default:'individual'"`

	ContactName  string `gorm:"type:varchar(255)"`
	ContactEmail string `gorm:"type:varchar(255)"`
	ContactPhone string `gorm:"type:varchar(50)"`
	City         string `gorm:"type:varchar(120)"`
	Country      string `gorm:"type:varchar(120)"`

	BankName              string `gorm:"type:varchar(255)"`
	BankIBAN              string `gorm:"type:varchar(50)"`
	TaxRegistrationNumber string `gorm:"type:varchar(100)"`

	Status string `gorm:"type:varchar(20);not null;default:'active'"`
	Notes  string `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Vendor) TableName() string {
	return "vendors"
}
