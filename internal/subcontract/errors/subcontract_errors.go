package subcontracterrors

import (
	"net/http"

	"go-settlement/internal/shared/apperror"
)

var (
	ErrSubcontractNotFound = apperror.New(
		apperror.CodeNotFound,
		"Subcontract not found",
		http.StatusNotFound,
	)
	ErrSubcontractCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Subcontract code already exists in this company",
		http.StatusConflict,
	)
	ErrInvalidSubcontractID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid subcontract ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"kind must be INDIVIDUAL or COMPANY",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_period and end_period must be YYYY-MM with end not before start",
		http.StatusBadRequest,
	)
	ErrCompanyTaxRate = apperror.New(
		apperror.CodeInvalidInput,
		"company subcontracts are paid gross and take no tax_rate",
		http.StatusBadRequest,
	)
)
