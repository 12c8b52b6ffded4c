package settlementerrors

import (
	"net/http"

	"go-settlement/internal/shared/apperror"
	"go-settlement/internal/shared/money"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid worker id",
		http.StatusBadRequest,
	)
	ErrWorkerIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"worker_id is required for this category",
		http.StatusBadRequest,
	)
	ErrWorkerNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"worker_name is required",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"invalid worker category",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid settlement status",
		http.StatusBadRequest,
	)
	ErrInvalidDateTime = apperror.New(
		apperror.CodeInvalidInput,
		"invalid datetime format, expected RFC3339",
		http.StatusBadRequest,
	)

	// Re-exported so callers only need this package for errors.Is checks.
	ErrInvalidAmount = money.ErrInvalidAmount
	ErrInvalidRate   = money.ErrInvalidRate

	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrEmptyBulkRequest = apperror.New(
		apperror.CodeInvalidInput,
		"at least one entry is required",
		http.StatusBadRequest,
	)
	ErrPaidAtRequiresPaidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"paid_at can only be set on a PAID settlement",
		http.StatusBadRequest,
	)

	ErrDataSourceUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"worker data source unavailable, no settlements were created",
		http.StatusServiceUnavailable,
	)

	ErrSettlementNotFound = apperror.New(
		apperror.CodeNotFound,
		"settlement not found",
		http.StatusNotFound,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid settlement status transition",
		http.StatusConflict,
	)
	ErrDeleteOnlyScheduled = apperror.New(
		apperror.CodeInvalidState,
		"settlement can only be deleted while status is SCHEDULED",
		http.StatusConflict,
	)
	ErrConflict = apperror.New(
		apperror.CodeStaleVersion,
		"settlement was changed since it was loaded, reload and try again",
		http.StatusConflict,
	)
	ErrSettlementAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"settlement already exists for this worker and period",
		http.StatusConflict,
	)

	// ErrDuplicateObligation is raised by stores when an insert loses the
	// uniqueness race. Generation folds it into the skipped count.
	ErrDuplicateObligation = apperror.New(
		apperror.CodeConflict,
		"duplicate settlement obligation",
		http.StatusConflict,
	)
)
