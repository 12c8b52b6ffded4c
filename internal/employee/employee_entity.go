package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmploymentType string

const (
	EmploymentTypeRegular EmploymentType = "REGULAR"
	EmploymentTypeDaily   EmploymentType = "DAILY"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "ACTIVE"
	EmploymentStatusInactive   EmploymentStatus = "INACTIVE"
	EmploymentStatusTerminated EmploymentStatus = "TERMINATED"
)

type Employee struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:uq_employee_number,priority:1"`
	EmployeeNumber   string           `gorm:"type:varchar(32);not null;uniqueIndex:uq_employee_number,priority:2"`
	FullName         string           `gorm:"type:varchar(200);not null"`
	Email            *string          `gorm:"type:varchar(200)"`
	EmploymentType   EmploymentType   `gorm:"type:varchar(16);not null"`
	EmploymentStatus EmploymentStatus `gorm:"type:varchar(16);not null"`
	HireDate         time.Time        `gorm:"type:date;not null"`
	TerminationDate  *time.Time       `gorm:"type:date"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// ActiveRegular is a regular employee with the salary in force for a period.
type ActiveRegular struct {
	EmployeeID uuid.UUID
	FullName   string
	BaseSalary int64
}
