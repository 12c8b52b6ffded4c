package settlement

import (
	settlementerrors "go-settlement/internal/settlement/errors"
	"go-settlement/internal/shared/dberr"
)

// mapRepositoryError turns a lost race on the worker/period index into
// ErrDuplicateObligation, which generation counts as skipped.
func mapRepositoryError(err error) error {
	return dberr.Map(err, settlementerrors.ErrSettlementNotFound, map[string]error{
		UniqueWorkerPeriodIndex: settlementerrors.ErrDuplicateObligation,
	})
}
