// Package tenant confines queries to a single company.
package tenant

import (
	"errors"

	"gorm.io/gorm"
)

// ErrMissingCompany fails a query that would otherwise read every tenant.
var ErrMissingCompany = errors.New("tenant: company id is required")

func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == "" {
			_ = db.AddError(ErrMissingCompany)
			return db
		}
		return db.Where("company_id = ?", companyID)
	}
}
