package app

import (
	"go-settlement/internal/employee"
	"go-settlement/internal/employeesalary"
	"go-settlement/internal/messaging/kafka"
	"go-settlement/internal/settlement"
	"go-settlement/internal/shared/counter"
	"go-settlement/internal/subcontract"

	"gorm.io/gorm"
)

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&employeesalary.EmployeeSalary{},
		&subcontract.Subcontract{},
	); err != nil {
		return err
	}
	if err := counter.Migrate(db); err != nil {
		return err
	}
	if err := kafka.Migrate(db); err != nil {
		return err
	}
	return settlement.Migrate(db)
}
