package renter

import (
	"strings"
	"time"

	"proryx/internal/tenancy"

	"gorm.io/gorm"
)

const (
	TypeIndividual = "individual"
	TypeEntity     = "entity"

	StatusActive      = "active"
	StatusInactive    = "inactive"
	StatusBlacklisted = "blacklisted"

	KYCNotStarted          = "not_started"
	KYCIncomplete          = "incomplete"
	KYCPendingVerification = "pending_verification"
	KYCVerified            = "verified"
	KYCExpired             = "expired"
	KYCRejected            = "rejected"

	DocNotUploaded = "not_uploaded"
	DocUploaded    = "uploaded"
	DocUnderReview = "under_review"
	DocVerified    = "verified"
	DocRejected    = "rejected"
)

func ValidRenterType(s string) bool {
	return s == TypeIndividual || s == TypeEntity
}

func ValidRenterStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusBlacklisted
}

// DocumentTypeSpec describes one entry of the fixed KYC document
// catalogue. AppliesTo empty means the type fits both renter types.
type DocumentTypeSpec struct {
	Code           string
	Name           string
	Category       string
	AppliesTo      string
	Mandatory      bool
	ExpiryRequired bool
}

var documentCatalogue = []DocumentTypeSpec{
	{Code: "passport", Name: "Passport", Category: "identity", AppliesTo: TypeIndividual, Mandatory: true, ExpiryRequired: true},
	{Code: "national_id", Name: "National ID", Category: "identity", AppliesTo: TypeIndividual, Mandatory: true, ExpiryRequired: true},
	{Code: "residence_visa", Name: "Residence Visa", Category: "residency", AppliesTo: TypeIndividual, ExpiryRequired: true},
	{Code: "trade_license", Name: "Trade License", Category: "business", AppliesTo: TypeEntity, Mandatory: true, ExpiryRequired: true},
	{Code: "registration_certificate", Name: "Registration Certificate", Category: "business", AppliesTo: TypeEntity, Mandatory: true},
	{Code: "bank_statement", Name: "Bank Statement", Category: "financial"},
	{Code: "other", Name: "Other", Category: "other"},
}

func DocumentTypeByCode(code string) (DocumentTypeSpec, bool) {
	for _, dt := range documentCatalogue {
		if dt.Code == code {
			return dt, true
		}
	}
	return DocumentTypeSpec{}, false
}

// MandatoryDocumentTypes returns the catalogue entries a renter of the
// given type must clear before KYC can reach verified.
func MandatoryDocumentTypes(renterType string) []DocumentTypeSpec {
	var out []DocumentTypeSpec
	for _, dt := range documentCatalogue {
		if !dt.Mandatory {
			continue
		}
		if dt.AppliesTo == "" || dt.AppliesTo == renterType {
			out = append(out, dt)
		}
	}
	return out
}

// RenterCode is unique per tenant, covered by the index
// uniq_tenant_renter_code on (account_id, company_id, renter_code)
// declared in db/schema.sql.
type Renter struct {
	tenancy.Key

	RenterCode string `gorm:"type:varchar(30);not null;index"`
	RenterType string `gorm:"type:varchar(20);not null;default:'individual'"`

	FirstName  string `gorm:"type:varchar(120)"`
	LastName   string `gorm:"type:varchar(120)"`
	EntityName string `gorm:"type:varchar(255)"`

	Email       string `gorm:"type:varchar(255);index"`
	Phone       string `gorm:"type:varchar(50)"`
	Nationality string `gorm:"type:varchar(100)"`

	KYCStatus     string     `gorm:"type:varchar(30);not null;default:'not_started'"`
	KYCVerifiedAt *time.Time
	KYCVerifiedBy *int64

	Status          string `gorm:"type:varchar(20);not null;default:'active'"`
	BlacklistReason string `gorm:"type:text"`
	BlacklistedAt   *time.Time
	BlacklistedBy   *int64

	Notes string `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Renter) TableName() string {
	return "renters"
}

func (r *Renter) DisplayName() string {
	if r.RenterType == TypeEntity {
		if r.EntityName != "" {
			return r.EntityName
		}
		return r.RenterCode
	}
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name == "" {
		return r.RenterCode
	}
	return name
}

// RenterContact references its renter by local id. The reference is
// meaningless outside the tenant pair it is stamped with.
type RenterContact struct {
	tenancy.Key

	RenterID    int64  `gorm:"not null;index"`
	ContactName string `gorm:"type:varchar(255);not null"`
	Role        string `gorm:"type:varchar(120)"`
	Email       string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(50)"`
	IsPrimary   bool   `gorm:"not null;default:false"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (RenterContact) TableName() string {
	return "renter_contacts"
}

// RenterDocument carries a file reference only, never file bytes.
type RenterDocument struct {
	tenancy.Key

	RenterID       int64  `gorm:"not null;index"`
	DocumentType   string `gorm:"type:varchar(50);not null"`
	DocumentNumber string `gorm:"type:varchar(100)"`
	ExpiryDate     *time.Time
	IssuingCountry string `gorm:"type:varchar(120)"`

	FileReference string `gorm:"type:varchar(500)"`
	FileName      string `gorm:"type:varchar(255)"`

	VerificationStatus string     `gorm:"type:varchar(30);not null;default:'not_uploaded'"`
	VerifiedAt         *time.Time
	VerifiedBy         *int64
	RejectionReason    string `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (RenterDocument) TableName() string {
	return "renter_documents"
}

func (d *RenterDocument) IsExpired(now time.Time) bool {
	return d.ExpiryDate != nil && now.After(*d.ExpiryDate)
}
