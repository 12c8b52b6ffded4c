package subcontract

import (
	"go-settlement/internal/shared/dberr"
	subcontracterrors "go-settlement/internal/subcontract/errors"
)

func mapRepositoryError(err error) error {
	return dberr.Map(err, subcontracterrors.ErrSubcontractNotFound, map[string]error{
		"uq_subcontract_code": subcontracterrors.ErrSubcontractCodeAlreadyExists,
	})
}
