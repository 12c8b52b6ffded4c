package employeesalary

import (
	employeesalaryerrors "go-settlement/internal/employeesalary/errors"
	"go-settlement/internal/shared/dberr"
)

func mapRepositoryError(err error) error {
	return dberr.Map(err, employeesalaryerrors.ErrSalaryNotFound, map[string]error{
		"uq_employee_salary_effective": employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists,
	})
}
