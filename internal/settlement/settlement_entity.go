package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const UniqueWorkerPeriodIndex = "uq_settlement_worker_period"

type Settlement struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_settlement_company_period,priority:1"`
	Category         Category        `gorm:"type:varchar(32);not null"`
	WorkerID         *uuid.UUID      `gorm:"type:uuid;index"`
	WorkerKey        string          `gorm:"type:varchar(200);not null"`
	WorkerName       string          `gorm:"type:varchar(200);not null"`
	Period           Period          `gorm:"type:char(7);not null;index:idx_settlement_company_period,priority:2"`
	BaseAmount       int64           `gorm:"not null"`
	DeductionAmount  int64           `gorm:"not null"`
	FinalAmount      int64           `gorm:"not null"`
	TaxRate          decimal.Decimal `gorm:"type:numeric(6,4);not null"`
	Status           Status          `gorm:"type:varchar(16);not null"`
	PaidAt           *time.Time
	Memo             *string `gorm:"type:text"`
	Origin           Origin  `gorm:"type:varchar(16);not null"`
	AmountOverridden bool    `gorm:"not null"`
	Inputs           datatypes.JSON
	Version          int64      `gorm:"not null"`
	CreatedBy        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Settlement) TableName() string {
	return "settlements"
}

// ComputedFinal is what the record would pay without an override.
func (s Settlement) ComputedFinal() int64 {
	return s.BaseAmount - s.DeductionAmount
}

func (s Settlement) UniqueKey() string {
	return s.CompanyID.String() + "|" + string(s.Category) + "|" + s.WorkerKey + "|" + string(s.Period)
}

func newRecord(companyID uuid.UUID, o Obligation, origin Origin, createdBy *uuid.UUID, now time.Time) (*Settlement, error) {
	amounts, err := o.Inputs.Amounts()
	if err != nil {
		return nil, err
	}
	snapshot, err := inputsSnapshot(o.Inputs)
	if err != nil {
		return nil, err
	}
	return &Settlement{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Category:        o.Category(),
		WorkerID:        o.WorkerID,
		WorkerKey:       o.WorkerKey(),
		WorkerName:      o.WorkerName,
		Period:          o.Period,
		BaseAmount:      amounts.Base,
		DeductionAmount: amounts.Deduction,
		FinalAmount:     amounts.Final,
		TaxRate:         amounts.Rate,
		Status:          StatusScheduled,
		Origin:          origin,
		Inputs:          datatypes.JSON(snapshot),
		Version:         1,
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
