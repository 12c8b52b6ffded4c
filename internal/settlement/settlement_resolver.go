package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-settlement/internal/employee"
	settlementerrors "go-settlement/internal/settlement/errors"
	"go-settlement/internal/subcontract"

	"github.com/google/uuid"
)

// Resolver lists every worker of one category owed a settlement for a
// period. It always returns the full set; diffing is the generator's job.
type Resolver interface {
	Category() Category
	Resolve(ctx context.Context, companyID string, period Period) ([]Obligation, error)
}

type EmployeeSource interface {
	ListActiveRegular(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]employee.ActiveRegular, error)
}

type SubcontractSource interface {
	ListActive(ctx context.Context, companyID string, kind subcontract.Kind, period string) ([]subcontract.Subcontract, error)
}

func sourceUnavailable(category Category, period Period, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return settlementerrors.ErrDataSourceUnavailable.WithErr(
		fmt.Errorf("resolve %s for %s: %w", category, period, err),
	)
}

type RegularResolver struct {
	employees EmployeeSource
}

func NewRegularResolver(employees EmployeeSource) *RegularResolver {
	return &RegularResolver{employees: employees}
}

func (r *RegularResolver) Category() Category { return CategoryRegular }

func (r *RegularResolver) Resolve(ctx context.Context, companyID string, period Period) ([]Obligation, error) {
	rows, err := r.employees.ListActiveRegular(ctx, companyID, period.Start(), period.End())
	if err != nil {
		return nil, sourceUnavailable(CategoryRegular, period, err)
	}

	out := make([]Obligation, 0, len(rows))
	for _, row := range rows {
		id := row.EmployeeID
		out = append(out, Obligation{
			WorkerID:   &id,
			WorkerName: row.FullName,
			Period:     period,
			Inputs:     SalaryInputs{ContractedSalary: row.BaseSalary},
		})
	}
	return out, nil
}

// DailyWagePolicy decides where daily obligations come from.
type DailyWagePolicy string

// DailyWagePolicyManual: daily records are entered by hand, so automatic
// generation never produces any.
const DailyWagePolicyManual DailyWagePolicy = "MANUAL"

type DailyResolver struct {
	policy DailyWagePolicy
}

func NewDailyResolver(policy DailyWagePolicy) *DailyResolver {
	return &DailyResolver{policy: policy}
}

func (r *DailyResolver) Category() Category { return CategoryDaily }

func (r *DailyResolver) Resolve(ctx context.Context, companyID string, period Period) ([]Obligation, error) {
	return nil, nil
}

type SubcontractResolver struct {
	kind         subcontract.Kind
	subcontracts SubcontractSource
}

func NewSubcontractResolver(kind subcontract.Kind, subcontracts SubcontractSource) *SubcontractResolver {
	return &SubcontractResolver{kind: kind, subcontracts: subcontracts}
}

func (r *SubcontractResolver) Category() Category {
	if r.kind == subcontract.KindCompany {
		return CategorySubcontractCompany
	}
	return CategorySubcontractIndividual
}

func (r *SubcontractResolver) Resolve(ctx context.Context, companyID string, period Period) ([]Obligation, error) {
	rows, err := r.subcontracts.ListActive(ctx, companyID, r.kind, period.String())
	if err != nil {
		return nil, sourceUnavailable(r.Category(), period, err)
	}

	out := make([]Obligation, 0, len(rows))
	for _, row := range rows {
		id := row.ID
		out = append(out, Obligation{
			WorkerID:   &id,
			WorkerName: row.Name,
			Period:     period,
			Inputs:     r.inputs(row.ID, row),
		})
	}
	return out, nil
}

func (r *SubcontractResolver) inputs(id uuid.UUID, row subcontract.Subcontract) ObligationInputs {
	if r.kind == subcontract.KindCompany {
		return CompanyContractInputs{ContractID: id, MonthlyAmount: row.MonthlyAmount}
	}
	return ContractInputs{ContractID: id, MonthlyAmount: row.MonthlyAmount, TaxRate: row.TaxRate}
}

// ResolverSet maps each category to its resolver.
type ResolverSet map[Category]Resolver

func NewResolverSet(resolvers ...Resolver) ResolverSet {
	set := make(ResolverSet, len(resolvers))
	for _, r := range resolvers {
		set[r.Category()] = r
	}
	return set
}

func NewDefaultResolverSet(employees EmployeeSource, subcontracts SubcontractSource) ResolverSet {
	return NewResolverSet(
		NewRegularResolver(employees),
		NewDailyResolver(DailyWagePolicyManual),
		NewSubcontractResolver(subcontract.KindIndividual, subcontracts),
		NewSubcontractResolver(subcontract.KindCompany, subcontracts),
	)
}

func (s ResolverSet) For(category Category) (Resolver, error) {
	r, ok := s[category]
	if !ok {
		return nil, settlementerrors.ErrInvalidCategory
	}
	return r, nil
}
