package settlement

import (
	"encoding/json"
	"strings"

	settlementerrors "go-settlement/internal/settlement/errors"
	"go-settlement/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Amounts is the computed breakdown for one obligation.
type Amounts struct {
	Base      int64
	Deduction int64
	Final     int64
	Rate      decimal.Decimal
}

// ObligationInputs is the closed set of amount shapes, one per category.
// The unexported method keeps other packages from adding variants.
type ObligationInputs interface {
	Category() Category
	Amounts() (Amounts, error)
	isObligationInputs()
}

// SalaryInputs: regular staff are paid their contracted salary in full.
type SalaryInputs struct {
	ContractedSalary int64 `json:"contracted_salary"`
}

func (SalaryInputs) Category() Category { return CategoryRegular }
func (SalaryInputs) isObligationInputs() {}

func (in SalaryInputs) Amounts() (Amounts, error) {
	if in.ContractedSalary < 0 {
		return Amounts{}, settlementerrors.ErrInvalidAmount
	}
	return Amounts{Base: in.ContractedSalary, Final: in.ContractedSalary, Rate: decimal.Zero}, nil
}

// DailyWageInputs are entered by hand. WithholdingRate is optional.
type DailyWageInputs struct {
	DailyWage       int64           `json:"daily_wage"`
	Days            int             `json:"days"`
	WithholdingRate decimal.Decimal `json:"withholding_rate"`
}

func (DailyWageInputs) Category() Category { return CategoryDaily }
func (DailyWageInputs) isObligationInputs() {}

func (in DailyWageInputs) Amounts() (Amounts, error) {
	if in.DailyWage < 0 {
		return Amounts{}, settlementerrors.ErrInvalidAmount
	}
	if in.Days <= 0 {
		return Amounts{}, settlementerrors.ErrInvalidDays
	}
	base := decimal.NewFromInt(in.DailyWage).Mul(decimal.NewFromInt(int64(in.Days)))
	if base.GreaterThan(decimal.NewFromInt(maxAmount)) {
		return Amounts{}, settlementerrors.ErrInvalidAmount
	}
	return withholding(base.IntPart(), in.WithholdingRate)
}

// ContractInputs belong to individual subcontractors, who are withheld at
// their contract's rate.
type ContractInputs struct {
	ContractID    uuid.UUID       `json:"contract_id"`
	MonthlyAmount int64           `json:"monthly_amount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
}

func (ContractInputs) Category() Category { return CategorySubcontractIndividual }
func (ContractInputs) isObligationInputs() {}

func (in ContractInputs) Amounts() (Amounts, error) {
	return withholding(in.MonthlyAmount, in.TaxRate)
}

// CompanyContractInputs belong to corporate subcontractors, invoiced gross.
type CompanyContractInputs struct {
	ContractID    uuid.UUID `json:"contract_id"`
	MonthlyAmount int64     `json:"monthly_amount"`
}

func (CompanyContractInputs) Category() Category { return CategorySubcontractCompany }
func (CompanyContractInputs) isObligationInputs() {}

func (in CompanyContractInputs) Amounts() (Amounts, error) {
	if in.MonthlyAmount < 0 {
		return Amounts{}, settlementerrors.ErrInvalidAmount
	}
	return Amounts{Base: in.MonthlyAmount, Final: in.MonthlyAmount, Rate: decimal.Zero}, nil
}

const maxAmount = int64(^uint64(0) >> 1)

func withholding(base int64, rate decimal.Decimal) (Amounts, error) {
	deduction, final, err := money.ApplyWithholding(base, rate)
	if err != nil {
		return Amounts{}, err
	}
	return Amounts{Base: base, Deduction: deduction, Final: final, Rate: rate}, nil
}

// Obligation is one worker who must be paid for one period.
type Obligation struct {
	WorkerID   *uuid.UUID
	WorkerName string
	Period     Period
	Inputs     ObligationInputs
}

func (o Obligation) Category() Category {
	return o.Inputs.Category()
}

func (o Obligation) WorkerKey() string {
	return WorkerKey(o.WorkerID, o.WorkerName)
}

var nameFolder = cases.Fold()

// WorkerKey is the worker part of the uniqueness key: the directory id when
// there is one, otherwise the case-folded name with whitespace collapsed.
func WorkerKey(workerID *uuid.UUID, name string) string {
	if workerID != nil && *workerID != uuid.Nil {
		return workerID.String()
	}
	return "name:" + NormalizeWorkerName(name)
}

func NormalizeWorkerName(name string) string {
	return nameFolder.String(strings.Join(strings.Fields(name), " "))
}

func inputsSnapshot(in ObligationInputs) ([]byte, error) {
	return json.Marshal(in)
}
