package subcontract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-settlement/internal/shared/contextutil"
	"go-settlement/internal/shared/counter"
	"go-settlement/internal/shared/money"
	subcontracterrors "go-settlement/internal/subcontract/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	periodLayout = "2006-01"
	codeCounter  = "subcontract_code"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateSubcontractRequest) (SubcontractResponse, error)
	GetAll(ctx context.Context, companyID string, filter SubcontractFilterRequest) ([]SubcontractResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SubcontractResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateSubcontractRequest) (SubcontractResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("subcontract.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("subcontract.service")
	}
	return &service{repo: repo, counter: counter, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateSubcontractRequest) (SubcontractResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SubcontractResponse{}, subcontracterrors.ErrInvalidCompanyID
	}
	kind, err := ParseKind(req.Kind)
	if err != nil {
		return SubcontractResponse{}, err
	}
	amount, err := money.ParseCurrencyAmount(req.MonthlyAmount)
	if err != nil {
		return SubcontractResponse{}, err
	}
	rate, err := resolveTaxRate(kind, req.TaxRate)
	if err != nil {
		return SubcontractResponse{}, err
	}
	start, end, err := parsePeriodRange(req.StartPeriod, req.EndPeriod)
	if err != nil {
		return SubcontractResponse{}, err
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		next, err := s.counter.GetNextValue(ctx, companyID, codeCounter)
		if err != nil {
			s.logger.Error("generate subcontract code failed", zap.String("request_id", rid), zap.Error(err))
			return SubcontractResponse{}, err
		}
		code = fmt.Sprintf("SUB-%06d", next)
	}

	sc := &Subcontract{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		Code:          code,
		Kind:          kind,
		Name:          strings.TrimSpace(req.Name),
		MonthlyAmount: amount,
		TaxRate:       rate,
		StartPeriod:   start,
		EndPeriod:     end,
		Status:        StatusActive,
	}
	if err := s.repo.Create(ctx, sc); err != nil {
		s.logger.Error("create subcontract failed", zap.String("request_id", rid), zap.Error(err))
		return SubcontractResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("subcontract created",
		zap.String("request_id", rid),
		zap.String("subcontract_id", sc.ID.String()),
		zap.String("kind", string(kind)),
	)
	return mapToResponse(*sc), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter SubcontractFilterRequest) ([]SubcontractResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]SubcontractResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SubcontractResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SubcontractResponse{}, subcontracterrors.ErrInvalidSubcontractID
	}
	sc, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SubcontractResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*sc), nil
}

// Update never changes Kind: switching between individual and company
// would change the settlement category of an existing worker.
func (s *service) Update(ctx context.Context, companyID, id string, req UpdateSubcontractRequest) (SubcontractResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SubcontractResponse{}, subcontracterrors.ErrInvalidSubcontractID
	}
	amount, err := money.ParseCurrencyAmount(req.MonthlyAmount)
	if err != nil {
		return SubcontractResponse{}, err
	}
	start, end, err := parsePeriodRange(req.StartPeriod, req.EndPeriod)
	if err != nil {
		return SubcontractResponse{}, err
	}

	sc, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SubcontractResponse{}, mapRepositoryError(err)
	}
	rate, err := resolveTaxRate(sc.Kind, req.TaxRate)
	if err != nil {
		return SubcontractResponse{}, err
	}

	sc.Name = strings.TrimSpace(req.Name)
	sc.MonthlyAmount = amount
	sc.TaxRate = rate
	sc.StartPeriod = start
	sc.EndPeriod = end
	sc.Status = Status(req.Status)

	if err := s.repo.Update(ctx, sc); err != nil {
		return SubcontractResponse{}, mapRepositoryError(err)
	}
	s.logger.Info("subcontract updated", zap.String("subcontract_id", id))
	return mapToResponse(*sc), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return subcontracterrors.ErrInvalidSubcontractID
	}
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("subcontract deleted", zap.String("subcontract_id", id))
	return nil
}

func ParseKind(v string) (Kind, error) {
	switch k := Kind(strings.ToUpper(strings.TrimSpace(v))); k {
	case KindIndividual, KindCompany:
		return k, nil
	}
	return "", subcontracterrors.ErrInvalidKind
}

// resolveTaxRate defaults individuals to the statutory withholding rate.
func resolveTaxRate(kind Kind, input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if kind == KindCompany {
		if input == "" {
			return decimal.Zero, nil
		}
		rate, err := money.ParseRate(input)
		if err != nil {
			return decimal.Zero, err
		}
		if !rate.IsZero() {
			return decimal.Zero, subcontracterrors.ErrCompanyTaxRate
		}
		return decimal.Zero, nil
	}
	if input == "" {
		return money.DefaultIndividualWithholdingRate, nil
	}
	return money.ParseRate(input)
}

func parsePeriodRange(start string, end *string) (string, *string, error) {
	startT, err := time.Parse(periodLayout, strings.TrimSpace(start))
	if err != nil {
		return "", nil, subcontracterrors.ErrInvalidPeriodRange
	}
	if end == nil || strings.TrimSpace(*end) == "" {
		return startT.Format(periodLayout), nil, nil
	}
	endT, err := time.Parse(periodLayout, strings.TrimSpace(*end))
	if err != nil || endT.Before(startT) {
		return "", nil, subcontracterrors.ErrInvalidPeriodRange
	}
	e := endT.Format(periodLayout)
	return startT.Format(periodLayout), &e, nil
}

func mapToResponse(sc Subcontract) SubcontractResponse {
	return SubcontractResponse{
		ID:            sc.ID.String(),
		CompanyID:     sc.CompanyID.String(),
		Code:          sc.Code,
		Kind:          string(sc.Kind),
		Name:          sc.Name,
		MonthlyAmount: sc.MonthlyAmount,
		TaxRate:       sc.TaxRate.String(),
		StartPeriod:   sc.StartPeriod,
		EndPeriod:     sc.EndPeriod,
		Status:        string(sc.Status),
	}
}
