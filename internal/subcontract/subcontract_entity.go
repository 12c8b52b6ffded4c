package subcontract

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Kind separates natural-person contractors, who are subject to
// withholding, from registered companies, who are paid gross.
type Kind string

const (
	KindIndividual Kind = "INDIVIDUAL"
	KindCompany    Kind = "COMPANY"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Subcontract struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_subcontract_company_kind,priority:1;uniqueIndex:uq_subcontract_code,priority:1"`
	Code          string          `gorm:"type:varchar(32);not null;uniqueIndex:uq_subcontract_code,priority:2"`
	Kind          Kind            `gorm:"type:varchar(16);not null;index:idx_subcontract_company_kind,priority:2"`
	Name          string          `gorm:"type:varchar(200);not null"`
	MonthlyAmount int64           `gorm:"not null"`
	TaxRate       decimal.Decimal `gorm:"type:numeric(6,4);not null"`
	StartPeriod   string          `gorm:"type:char(7);not null"`
	EndPeriod     *string         `gorm:"type:char(7)"`
	Status        Status          `gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// ActiveIn reports whether the contract pays out for period ("YYYY-MM").
// Periods compare lexically.
func (s Subcontract) ActiveIn(period string) bool {
	if s.Status != StatusActive || s.StartPeriod > period {
		return false
	}
	return s.EndPeriod == nil || *s.EndPeriod >= period
}
