package tenancy

import "github.com/google/uuid"

// Key is the shared identity value every tenant-scoped entity embeds.
// (account_id, company_id, id) is the composite primary key; ID is only
// unique within one tenant pair. UUID is the external identifier and the
// only one that ever crosses the API boundary.
type Key struct {
	AccountID int64     `gorm:"primaryKey;autoIncrement:false" json:"-"`
	CompanyID int64     `gorm:"primaryKey;autoIncrement:false" json:"-"`
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"-"`
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"uuid"`
}

// TenantKey lets the embedding entity satisfy the accessor's Entity
// constraint without inheritance.
func (k *Key) TenantKey() *Key { return k }

func (k *Key) BelongsTo(tc Context) bool {
	return k.AccountID == tc.AccountID && k.CompanyID == tc.CompanyID
}
