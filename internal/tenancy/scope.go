package tenancy

import "gorm.io/gorm"

// Scope constrains a query to exactly one (account_id, company_id) pair.
func Scope(tc Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("account_id = ? AND company_id = ?", tc.AccountID, tc.CompanyID)
	}
}
