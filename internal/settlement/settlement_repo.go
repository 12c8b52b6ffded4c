package settlement

import (
	"context"
	"time"

	settlementerrors "go-settlement/internal/settlement/errors"
	"go-settlement/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListFilter narrows List. Zero fields are ignored. Search matches worker
// name or period, case-insensitively.
type ListFilter struct {
	Period   *Period
	Category *Category
	Status   *Status
	Search   string
}

// Store persists settlement records. InsertIfAbsent must be atomic on
// (company, category, worker key, period): a losing insert returns
// ErrDuplicateObligation and writes nothing.
type Store interface {
	InsertIfAbsent(ctx context.Context, s *Settlement) error
	ExistingWorkerKeys(ctx context.Context, companyID string, category Category, period Period) (map[string]struct{}, error)
	FindByID(ctx context.Context, companyID, id string) (*Settlement, error)
	UpdateVersioned(ctx context.Context, s *Settlement, expectedVersion int64) error
	List(ctx context.Context, companyID string, filter ListFilter) ([]Settlement, error)
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Store {
	return &repository{db: db}
}

// Migrate creates the table and the partial unique index that makes
// generation idempotent. Soft-deleted rows do not hold the key.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Settlement{}); err != nil {
		return err
	}
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ` + UniqueWorkerPeriodIndex + `
ON settlements (company_id, category, worker_key, period)
WHERE deleted_at IS NULL`).Error
}

func (r *repository) InsertIfAbsent(ctx context.Context, s *Settlement) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"},
				{Name: "category"},
				{Name: "worker_key"},
				{Name: "period"},
			},
			TargetWhere: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "deleted_at IS NULL"},
			}},
			DoNothing: true,
		}).
		Create(s)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return settlementerrors.ErrDuplicateObligation
	}
	return nil
}

func (r *repository) ExistingWorkerKeys(
	ctx context.Context,
	companyID string,
	category Category,
	period Period,
) (map[string]struct{}, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Model(&Settlement{}).
		Scopes(tenant.Scope(companyID)).
		Where("category = ? AND period = ?", category, period).
		Pluck("worker_key", &keys).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out, nil
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*Settlement, error) {
	var s Settlement
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &s, nil
}

func (r *repository) UpdateVersioned(ctx context.Context, s *Settlement, expectedVersion int64) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&Settlement{}).
		Scopes(tenant.Scope(s.CompanyID.String())).
		Where("id = ? AND version = ?", s.ID, expectedVersion).
		Updates(map[string]any{
			"final_amount":      s.FinalAmount,
			"amount_overridden": s.AmountOverridden,
			"status":            s.Status,
			"paid_at":           s.PaidAt,
			"memo":              s.Memo,
			"version":           gorm.Expr("version + 1"),
			"updated_at":        now,
		})
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return settlementerrors.ErrConflict
	}
	s.Version = expectedVersion + 1
	s.UpdatedAt = now
	return nil
}

func (r *repository) List(ctx context.Context, companyID string, filter ListFilter) ([]Settlement, error) {
	db := r.db.WithContext(ctx).
		Model(&Settlement{}).
		Scopes(tenant.Scope(companyID))

	if filter.Period != nil {
		db = db.Where("period = ?", *filter.Period)
	}
	if filter.Category != nil {
		db = db.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("(worker_name ILIKE ? OR period LIKE ?)", like, like)
	}

	var out []Settlement
	err := db.Order("period DESC").
		Order("category ASC").
		Order("worker_name ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Settlement{}, "id = ?", id)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return settlementerrors.ErrSettlementNotFound
	}
	return nil
}
