package counter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEmptyCounterType = errors.New("counter type is required")

// Counter holds the last issued value of one per-company sequence, such as
// employee numbers or subcontract codes.
type Counter struct {
	CompanyID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CounterType string    `gorm:"type:varchar(64);primaryKey"`
	LastValue   int64     `gorm:"not null"`
	UpdatedAt   time.Time
}

func (Counter) TableName() string {
	return "company_counters"
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Counter{})
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue increments and returns the sequence in one statement, so
// concurrent callers never receive the same value. Sequences start at 1.
func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	if counterType == "" {
		return 0, ErrEmptyCounterType
	}

	var next int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyID, counterType).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}
