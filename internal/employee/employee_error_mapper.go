package employee

import (
	employeeerrors "go-settlement/internal/employee/errors"
	"go-settlement/internal/shared/dberr"
)

func mapRepositoryError(err error) error {
	return dberr.Map(err, employeeerrors.ErrEmployeeNotFound, map[string]error{
		"uq_employee_number": employeeerrors.ErrEmployeeNumberAlreadyExists,
	})
}
