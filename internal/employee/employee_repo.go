package employee

import (
	"context"
	"time"

	"go-settlement/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, empl *Employee) error
	FindAllByCompany(ctx context.Context, companyID string, filter EmployeeFilterRequest) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, companyID string, id string) error
	ListActiveRegular(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]ActiveRegular, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter EmployeeFilterRequest) ([]Employee, error) {
	db := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmploymentType != "" {
		db = db.Where("employment_type = ?", filter.EmploymentType)
	}
	if filter.EmploymentStatus != "" {
		db = db.Where("employment_status = ?", filter.EmploymentStatus)
	}
	if filter.Q != "" {
		like := "%" + filter.Q + "%"
		db = db.Where("(full_name ILIKE ? OR employee_number ILIKE ?)", like, like)
	}

	var empls []Employee
	err := db.Order("full_name ASC").Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListActiveRegular returns active regular employees hired by periodEnd,
// each with the latest salary effective on or before periodEnd. Employees
// without a salary row are left out.
func (r *repository) ListActiveRegular(
	ctx context.Context,
	companyID string,
	periodStart, periodEnd time.Time,
) ([]ActiveRegular, error) {
	var rows []ActiveRegular
	err := r.db.WithContext(ctx).Raw(`
SELECT e.id AS employee_id, e.full_name, s.base_salary
FROM employees e
JOIN LATERAL (
	SELECT es.base_salary
	FROM employee_salaries es
	WHERE es.employee_id = e.id
		AND es.company_id = e.company_id
		AND es.effective_date <= ?
		AND es.deleted_at IS NULL
	ORDER BY es.effective_date DESC
	LIMIT 1
) s ON TRUE
WHERE e.company_id = ?
	AND e.deleted_at IS NULL
	AND e.employment_type = ?
	AND e.employment_status = ?
	AND e.hire_date <= ?
	AND (e.termination_date IS NULL OR e.termination_date >= ?)
ORDER BY e.full_name ASC
`, periodEnd, companyID, EmploymentTypeRegular, EmploymentStatusActive, periodEnd, periodStart).
		Scan(&rows).Error
	return rows, err
}
