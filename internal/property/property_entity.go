package property

import (
	"time"

	"proryx/internal/tenancy"

	"gorm.io/gorm"
)

const (
	UsageResidential = "residential"
	UsageCommercial  = "commercial"
	UsageMixed       = "mixed_use"

	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusRenovation = "under_renovation"

	UnitVacant      = "vacant"
	UnitOccupied    = "occupied"
	UnitReserved    = "reserved"
	UnitMaintenance = "maintenance"
)

func ValidUsageType(s string) bool {
	return s == UsageResidential || s == UsageCommercial || s == UsageMixed
}

func ValidPropertyStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusRenovation
}

func ValidUnitStatus(s string) bool {
	return s == UnitVacant || s == UnitOccupied || s == UnitReserved || s == UnitMaintenance
}

// PropertyCode is unique per tenant, not globally. The index
// uniq_tenant_property_code covers (account_id, company_id,
// property_code), see db/schema.sql.
type Property struct {
	tenancy.Key

	PropertyCode string `gorm:"type:varchar(30);not null;index"`
	Name         string `gorm:"type:varchar(150);not null"`
	UsageType    string `gorm:"type:varchar(20);not null"`
	Status       string `gorm:"type:varchar(20);not null;default:'active'"`

	AddressLine string `gorm:"type:varchar(255)"`
	City        string `gorm:"type:varchar(100)"`
	Country     string `gorm:"type:varchar(2)"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Property) TableName() string {
	return "properties"
}

// Unit belongs to a property by local id and may nest under a parent
// unit (building -> floor -> room). Both references stay inside the
// tenant, they are local ids, meaningless without the pair.
type Unit struct {
	tenancy.Key

	PropertyID   int64  `gorm:"not null;index"`
	ParentUnitID *int64 `gorm:"index"`
	UnitCode     string `gorm:"type:varchar(30);not null;index"`
	Floor        string `gorm:"type:varchar(20)"`
	AreaSqm      float64
	Status       string `gorm:"type:varchar(20);not null;default:'vacant'"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Unit) TableName() string {
	return "units"
}
