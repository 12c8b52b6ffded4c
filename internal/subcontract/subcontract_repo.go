package subcontract

import (
	"context"

	"go-settlement/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, sc *Subcontract) error
	FindAllByCompany(ctx context.Context, companyID string, filter SubcontractFilterRequest) ([]Subcontract, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Subcontract, error)
	Update(ctx context.Context, sc *Subcontract) error
	Delete(ctx context.Context, companyID, id string) error
	ListActive(ctx context.Context, companyID string, kind Kind, period string) ([]Subcontract, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sc *Subcontract) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter SubcontractFilterRequest) ([]Subcontract, error) {
	db := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.Kind != "" {
		db = db.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Q != "" {
		like := "%" + filter.Q + "%"
		db = db.Where("(name ILIKE ? OR code ILIKE ?)", like, like)
	}

	var rows []Subcontract
	err := db.Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Subcontract, error) {
	var sc Subcontract
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&sc, "id = ?", id).Error
	return &sc, err
}

func (r *repository) Update(ctx context.Context, sc *Subcontract) error {
	return r.db.WithContext(ctx).Save(sc).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Subcontract{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListActive returns contracts of kind that pay out in period ("YYYY-MM").
func (r *repository) ListActive(ctx context.Context, companyID string, kind Kind, period string) ([]Subcontract, error) {
	var rows []Subcontract
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("kind = ? AND status = ?", kind, StatusActive).
		Where("start_period <= ?", period).
		Where("(end_period IS NULL OR end_period >= ?)", period).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}
