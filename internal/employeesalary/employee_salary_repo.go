package employeesalary

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, salary *EmployeeSalary) error
	EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error)
	FindAllByCompany(ctx context.Context, companyID, employeeID string) ([]EmployeeSalary, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error)
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, salary *EmployeeSalary) error {
	return r.db.WithContext(ctx).Create(salary).Error
}

func (r *repository) EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", employeeID, companyID).
		Count(&n).Error
	return n > 0, err
}

// FindAllByCompany lists salary history, newest first per employee. An
// empty employeeID lists the whole company.
func (r *repository) FindAllByCompany(ctx context.Context, companyID, employeeID string) ([]EmployeeSalary, error) {
	db := r.db.WithContext(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.company_id = ?", companyID).
		Where("employee_salaries.deleted_at IS NULL")
	if employeeID != "" {
		db = db.Where("employee_salaries.employee_id = ?", employeeID)
	}

	var salaries []EmployeeSalary
	err := db.Order("employees.full_name ASC").
		Order("employee_salaries.effective_date DESC").
		Scan(&salaries).Error
	return salaries, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.db.WithContext(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.id = ?", id).
		Where("employee_salaries.company_id = ?", companyID).
		Where("employee_salaries.deleted_at IS NULL").
		Take(&salary).Error
	return &salary, err
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&EmployeeSalary{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
