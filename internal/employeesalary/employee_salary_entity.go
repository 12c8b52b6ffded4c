package employeesalary

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeSalary struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	EmployeeID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_employee_salary_effective,priority:1,where:deleted_at IS NULL"`
	BaseSalary    int64          `gorm:"not null"`
	EffectiveDate time.Time      `gorm:"type:date;not null;uniqueIndex:uq_employee_salary_effective,priority:2"`
	EmployeeName  string         `gorm:"->;-:migration"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
