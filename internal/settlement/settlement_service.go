package settlement

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-settlement/internal/events"
	settlementerrors "go-settlement/internal/settlement/errors"
	"go-settlement/internal/shared/contextutil"
	"go-settlement/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type Service interface {
	Generate(ctx context.Context, companyID, actorID string, req GenerateRequest) ([]GenerationResultResponse, error)
	CountPending(ctx context.Context, companyID string, req PendingRequest) (PendingResponse, error)
	List(ctx context.Context, companyID string, filter ListFilterRequest) ([]SettlementResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SettlementResponse, error)
	CreateManual(ctx context.Context, companyID, actorID string, req CreateSettlementRequest) (SettlementResponse, error)
	BulkCreateDaily(ctx context.Context, companyID, actorID string, req BulkDailyRequest) (BulkDailyResponse, error)
	MarkPaid(ctx context.Context, companyID, actorID, id string, req MarkPaidRequest) (SettlementResponse, error)
	Override(ctx context.Context, companyID, actorID, id string, req OverrideRequest) (SettlementResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Export(ctx context.Context, companyID string, filter ListFilterRequest) (*excelize.File, string, error)
}

type service struct {
	store     Store
	generator *Generator
	lifecycle *Lifecycle
	publisher EventPublisher
	logger    *zap.Logger
}

func NewService(store Store, generator *Generator, lifecycle *Lifecycle, logger ...*zap.Logger) Service {
	return NewServiceWithEvents(store, generator, lifecycle, nil, logger...)
}

func NewServiceWithEvents(
	store Store,
	generator *Generator,
	lifecycle *Lifecycle,
	publisher EventPublisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("settlement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settlement.service")
	}
	if publisher == nil {
		publisher = noopEventPublisher{}
	}
	return &service{
		store:     store,
		generator: generator,
		lifecycle: lifecycle,
		publisher: publisher,
		logger:    l,
	}
}

func (s *service) Generate(
	ctx context.Context,
	companyID, actorID string,
	req GenerateRequest,
) ([]GenerationResultResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, settlementerrors.ErrInvalidCompanyID
	}
	period, err := ParsePeriod(req.Period)
	if err != nil {
		return nil, err
	}

	s.logger.Info("settlement generation requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("period", period.String()),
		zap.String("category", req.Category),
	)

	var results []GenerationResult
	if strings.TrimSpace(req.Category) == "" {
		results, err = s.generator.GenerateAll(ctx, companyID, period)
	} else {
		var category Category
		category, err = ParseCategory(req.Category)
		if err != nil {
			return nil, err
		}
		var res GenerationResult
		res, err = s.generator.Generate(ctx, companyID, period, category)
		results = []GenerationResult{res}
	}

	// Publish what was committed even when a later category failed.
	out := make([]GenerationResultResponse, 0, len(results))
	for _, r := range results {
		if r.CreatedCount > 0 {
			s.publishGenerated(ctx, companyID, r)
		}
		out = append(out, mapToGenerationResponse(r))
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) CountPending(ctx context.Context, companyID string, req PendingRequest) (PendingResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return PendingResponse{}, settlementerrors.ErrInvalidCompanyID
	}
	period, err := ParsePeriod(req.Period)
	if err != nil {
		return PendingResponse{}, err
	}

	resp := PendingResponse{Period: period.String(), ByCategory: map[string]int{}}
	if strings.TrimSpace(req.Category) != "" {
		category, err := ParseCategory(req.Category)
		if err != nil {
			return PendingResponse{}, err
		}
		n, err := s.generator.CountPending(ctx, companyID, period, category)
		if err != nil {
			return PendingResponse{}, err
		}
		resp.ByCategory[string(category)] = n
		resp.Total = n
		return resp, nil
	}

	summary, err := s.generator.PendingSummary(ctx, companyID, period)
	if err != nil {
		return PendingResponse{}, err
	}
	for c, n := range summary {
		resp.ByCategory[string(c)] = n
		resp.Total += n
	}
	return resp, nil
}

func (s *service) List(ctx context.Context, companyID string, req ListFilterRequest) ([]SettlementResponse, error) {
	filter, err := parseListFilter(req)
	if err != nil {
		return nil, err
	}
	items, err := s.store.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(items), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SettlementResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SettlementResponse{}, settlementerrors.ErrSettlementNotFound
	}
	rec, err := s.store.FindByID(ctx, companyID, id)
	if err != nil {
		return SettlementResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) CreateManual(
	ctx context.Context,
	companyID, actorID string,
	req CreateSettlementRequest,
) (SettlementResponse, error) {
	companyUUID, actor, err := parseActor(companyID, actorID)
	if err != nil {
		return SettlementResponse{}, err
	}
	category, err := ParseCategory(req.Category)
	if err != nil {
		return SettlementResponse{}, err
	}
	period, err := ParsePeriod(req.Period)
	if err != nil {
		return SettlementResponse{}, err
	}
	workerID, err := parseWorkerID(req.WorkerID, category)
	if err != nil {
		return SettlementResponse{}, err
	}
	name := strings.TrimSpace(req.WorkerName)
	if name == "" {
		return SettlementResponse{}, settlementerrors.ErrWorkerNameRequired
	}

	inputs, err := manualInputs(category, req)
	if err != nil {
		return SettlementResponse{}, err
	}

	rec, err := newRecord(companyUUID, Obligation{
		WorkerID:   workerID,
		WorkerName: name,
		Period:     period,
		Inputs:     inputs,
	}, OriginManual, actor, s.lifecycle.clock.Now())
	if err != nil {
		return SettlementResponse{}, err
	}
	rec.Memo = trimmedMemo(req.Memo)

	if err := s.store.InsertIfAbsent(ctx, rec); err != nil {
		if errors.Is(err, settlementerrors.ErrDuplicateObligation) {
			return SettlementResponse{}, settlementerrors.ErrSettlementAlreadyExists
		}
		s.logger.Error("create settlement persist failed", zap.Error(err))
		return SettlementResponse{}, err
	}

	s.logger.Info("manual settlement created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("settlement_id", rec.ID.String()),
		zap.String("category", string(category)),
		zap.String("period", period.String()),
	)
	return mapToResponse(*rec), nil
}

func (s *service) BulkCreateDaily(
	ctx context.Context,
	companyID, actorID string,
	req BulkDailyRequest,
) (BulkDailyResponse, error) {
	companyUUID, actor, err := parseActor(companyID, actorID)
	if err != nil {
		return BulkDailyResponse{}, err
	}
	period, err := ParsePeriod(req.Period)
	if err != nil {
		return BulkDailyResponse{}, err
	}
	if len(req.Entries) == 0 {
		return BulkDailyResponse{}, settlementerrors.ErrEmptyBulkRequest
	}

	// Validate every row before writing any.
	now := s.lifecycle.clock.Now()
	records := make([]*Settlement, 0, len(req.Entries))
	for _, e := range req.Entries {
		workerID, err := parseWorkerID(e.WorkerID, CategoryDaily)
		if err != nil {
			return BulkDailyResponse{}, err
		}
		if strings.TrimSpace(e.WorkerName) == "" {
			return BulkDailyResponse{}, settlementerrors.ErrWorkerNameRequired
		}
		inputs, err := dailyInputs(e.DailyWage, e.Days, e.TaxRate)
		if err != nil {
			return BulkDailyResponse{}, err
		}
		rec, err := newRecord(companyUUID, Obligation{
			WorkerID:   workerID,
			WorkerName: strings.TrimSpace(e.WorkerName),
			Period:     period,
			Inputs:     inputs,
		}, OriginManual, actor, now)
		if err != nil {
			return BulkDailyResponse{}, err
		}
		rec.Memo = trimmedMemo(e.Memo)
		records = append(records, rec)
	}

	resp := BulkDailyResponse{SkippedWorkers: []string{}, Records: []SettlementResponse{}}
	for _, rec := range records {
		err := s.store.InsertIfAbsent(ctx, rec)
		if errors.Is(err, settlementerrors.ErrDuplicateObligation) {
			resp.SkippedCount++
			resp.SkippedWorkers = append(resp.SkippedWorkers, rec.WorkerName)
			continue
		}
		if err != nil {
			s.logger.Error("bulk daily settlement persist failed",
				zap.String("worker_name", rec.WorkerName),
				zap.Int("created", resp.CreatedCount),
				zap.Error(err),
			)
			return resp, err
		}
		resp.CreatedCount++
		resp.Records = append(resp.Records, mapToResponse(*rec))
	}

	s.logger.Info("bulk daily settlements created",
		zap.String("company_id", companyID),
		zap.String("period", period.String()),
		zap.Int("created", resp.CreatedCount),
		zap.Int("skipped", resp.SkippedCount),
	)
	return resp, nil
}

func (s *service) MarkPaid(
	ctx context.Context,
	companyID, actorID, id string,
	req MarkPaidRequest,
) (SettlementResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SettlementResponse{}, settlementerrors.ErrSettlementNotFound
	}
	paidAt, err := parseDateTime(req.PaidAt)
	if err != nil {
		return SettlementResponse{}, err
	}

	rec, err := s.lifecycle.MarkPaid(ctx, companyID, id, paidAt, req.Version)
	if err != nil {
		return SettlementResponse{}, err
	}
	s.publishPaid(ctx, rec)
	return mapToResponse(*rec), nil
}

func (s *service) Override(
	ctx context.Context,
	companyID, actorID, id string,
	req OverrideRequest,
) (SettlementResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SettlementResponse{}, settlementerrors.ErrSettlementNotFound
	}

	fields := OverrideFields{Memo: req.Memo, ExpectedVersion: req.Version}
	if req.Amount != nil {
		amount, err := money.ParseCurrencyAmount(*req.Amount)
		if err != nil {
			return SettlementResponse{}, err
		}
		fields.Amount = &amount
	}
	paidAt, err := parseDateTime(req.PaidAt)
	if err != nil {
		return SettlementResponse{}, err
	}
	fields.PaidAt = paidAt
	if req.Status != nil {
		st, err := ParseStatus(*req.Status)
		if err != nil {
			return SettlementResponse{}, err
		}
		fields.Status = &st
	}

	outcome, err := s.lifecycle.Override(ctx, companyID, id, fields)
	if err != nil {
		return SettlementResponse{}, err
	}
	if outcome.AmountChanged {
		s.publishOverridden(ctx, actorID, outcome)
	}
	if outcome.StatusChanged {
		s.publishPaid(ctx, outcome.Record)
	}
	return mapToResponse(*outcome.Record), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return settlementerrors.ErrSettlementNotFound
	}
	rec, err := s.store.FindByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if rec.Status != StatusScheduled {
		return settlementerrors.ErrDeleteOnlyScheduled
	}
	if err := s.store.Delete(ctx, companyID, id); err != nil {
		return err
	}
	s.logger.Info("settlement deleted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("settlement_id", id),
		zap.String("worker_key", rec.WorkerKey),
		zap.String("period", rec.Period.String()),
	)
	return nil
}

func (s *service) Export(ctx context.Context, companyID string, req ListFilterRequest) (*excelize.File, string, error) {
	filter, err := parseListFilter(req)
	if err != nil {
		return nil, "", err
	}
	items, err := s.store.List(ctx, companyID, filter)
	if err != nil {
		return nil, "", err
	}
	f, err := buildWorkbook(items)
	if err != nil {
		return nil, "", err
	}
	return f, exportFilename(req.Period), nil
}

func (s *service) publishGenerated(ctx context.Context, companyID string, r GenerationResult) {
	err := s.publisher.PublishGenerated(ctx, events.SettlementGeneratedEvent{
		EventType:  "settlement_generated",
		RequestID:  contextutil.GetRequestID(ctx),
		CompanyID:  companyID,
		Period:     r.Period.String(),
		Category:   string(r.Category),
		Created:    r.CreatedCount,
		Skipped:    r.SkippedCount,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("publish settlement generated failed", zap.Error(err))
	}
}

func (s *service) publishPaid(ctx context.Context, rec *Settlement) {
	if rec.PaidAt == nil {
		return
	}
	err := s.publisher.PublishPaid(ctx, events.SettlementPaidEvent{
		EventType:    "settlement_paid",
		RequestID:    contextutil.GetRequestID(ctx),
		CompanyID:    rec.CompanyID.String(),
		SettlementID: rec.ID.String(),
		FinalAmount:  rec.FinalAmount,
		PaidAt:       *rec.PaidAt,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("publish settlement paid failed", zap.String("settlement_id", rec.ID.String()), zap.Error(err))
	}
}

func (s *service) publishOverridden(ctx context.Context, actorID string, o OverrideOutcome) {
	rec := o.Record
	err := s.publisher.PublishOverridden(ctx, events.SettlementOverriddenEvent{
		EventType:     "settlement_overridden",
		RequestID:     contextutil.GetRequestID(ctx),
		CompanyID:     rec.CompanyID.String(),
		SettlementID:  rec.ID.String(),
		ActorID:       actorID,
		Base:          rec.BaseAmount,
		Deduction:     rec.DeductionAmount,
		Final:         rec.FinalAmount,
		PreviousFinal: o.PreviousFinal,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("publish settlement overridden failed", zap.String("settlement_id", rec.ID.String()), zap.Error(err))
	}
}

func parseActor(companyID, actorID string) (uuid.UUID, *uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, nil, settlementerrors.ErrInvalidCompanyID
	}
	if strings.TrimSpace(actorID) == "" {
		return companyUUID, nil, nil
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, nil, settlementerrors.ErrInvalidActorID
	}
	return companyUUID, &actor, nil
}

func parseWorkerID(raw *string, category Category) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		if category.RequiresWorkerID() {
			return nil, settlementerrors.ErrWorkerIDRequired
		}
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, settlementerrors.ErrInvalidWorkerID
	}
	return &id, nil
}

func manualInputs(category Category, req CreateSettlementRequest) (ObligationInputs, error) {
	if category == CategoryDaily {
		if strings.TrimSpace(req.DailyWage) != "" {
			return dailyInputs(req.DailyWage, req.Days, req.TaxRate)
		}
		return dailyInputs(req.Amount, 1, req.TaxRate)
	}

	amount, err := money.ParseCurrencyAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	switch category {
	case CategoryRegular:
		return SalaryInputs{ContractedSalary: amount}, nil
	case CategorySubcontractIndividual:
		rate := money.DefaultIndividualWithholdingRate
		if strings.TrimSpace(req.TaxRate) != "" {
			if rate, err = money.ParseRate(req.TaxRate); err != nil {
				return nil, err
			}
		}
		return ContractInputs{MonthlyAmount: amount, TaxRate: rate}, nil
	case CategorySubcontractCompany:
		return CompanyContractInputs{MonthlyAmount: amount}, nil
	}
	return nil, settlementerrors.ErrInvalidCategory
}

func dailyInputs(wage string, days int, taxRate string) (ObligationInputs, error) {
	dailyWage, err := money.ParseCurrencyAmount(wage)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		return nil, settlementerrors.ErrInvalidDays
	}
	rate := decimal.Zero
	if strings.TrimSpace(taxRate) != "" {
		if rate, err = money.ParseRate(taxRate); err != nil {
			return nil, err
		}
	}
	return DailyWageInputs{DailyWage: dailyWage, Days: days, WithholdingRate: rate}, nil
}

func parseListFilter(req ListFilterRequest) (ListFilter, error) {
	var filter ListFilter
	if strings.TrimSpace(req.Period) != "" {
		p, err := ParsePeriod(strings.TrimSpace(req.Period))
		if err != nil {
			return ListFilter{}, err
		}
		filter.Period = &p
	}
	if strings.TrimSpace(req.Category) != "" {
		c, err := ParseCategory(req.Category)
		if err != nil {
			return ListFilter{}, err
		}
		filter.Category = &c
	}
	if strings.TrimSpace(req.Status) != "" {
		st, err := ParseStatus(req.Status)
		if err != nil {
			return ListFilter{}, err
		}
		filter.Status = &st
	}
	filter.Search = strings.TrimSpace(req.Q)
	return filter, nil
}

func parseDateTime(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t, nil
	}
	return nil, settlementerrors.ErrInvalidDateTime
}

func trimmedMemo(memo *string) *string {
	if memo == nil {
		return nil
	}
	v := strings.TrimSpace(*memo)
	if v == "" {
		return nil
	}
	return &v
}
