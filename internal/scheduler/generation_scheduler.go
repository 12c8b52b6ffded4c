// Package scheduler enqueues periodic settlement generation requests. The
// requests travel through the outbox to the consumer, so a missed tick or a
// duplicate tick is harmless: generation is idempotent.
package scheduler

import (
	"context"
	"errors"
	"time"

	"go-settlement/internal/events"
	"go-settlement/internal/messaging/kafka"
	"go-settlement/internal/settlement"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	requestedBy   = "scheduler"
	aggregateType = "settlement_generation"
	runTimeout    = 30 * time.Second
)

type GenerationScheduler struct {
	cron      *cron.Cron
	outbox    kafka.OutboxRepository
	companies []string
	clock     settlement.Clock
	logger    *zap.Logger
}

func NewGenerationScheduler(
	spec string,
	outbox kafka.OutboxRepository,
	companyIDs []string,
	clock settlement.Clock,
	logger ...*zap.Logger,
) (*GenerationScheduler, error) {
	l := zap.L().Named("scheduler.generation")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.generation")
	}
	if len(companyIDs) == 0 {
		return nil, errors.New("auto generation needs at least one company id")
	}
	for _, id := range companyIDs {
		if _, err := uuid.Parse(id); err != nil {
			return nil, errors.New("invalid auto generation company id: " + id)
		}
	}
	if clock == nil {
		clock = settlement.SystemClock{}
	}

	s := &GenerationScheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		outbox:    outbox,
		companies: companyIDs,
		clock:     clock,
		logger:    l,
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *GenerationScheduler) Start() {
	s.logger.Info("generation scheduler started", zap.Strings("company_ids", s.companies))
	s.cron.Start()
}

// Stop waits for a running tick to finish or ctx to expire.
func (s *GenerationScheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.logger.Info("generation scheduler stopped")
}

func (s *GenerationScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if n, err := s.EnqueueAll(ctx); err != nil {
		s.logger.Error("enqueue generation requests failed", zap.Int("enqueued", n), zap.Error(err))
	}
}

// EnqueueAll writes one generation request per company for the current
// period and returns how many were written.
func (s *GenerationScheduler) EnqueueAll(ctx context.Context) (int, error) {
	now := s.clock.Now()
	period := settlement.PeriodOf(now)

	var errs []error
	enqueued := 0
	for _, companyID := range s.companies {
		event := events.SettlementGenerationRequestedEvent{
			EventType:   "settlement_generation_requested",
			RequestID:   uuid.NewString(),
			CompanyID:   companyID,
			Period:      period.String(),
			RequestedBy: requestedBy,
			OccurredAt:  now,
		}
		row, err := kafka.NewOutboxEvent(
			events.SettlementGenerationRequestedTopic,
			event.EventType,
			aggregateType,
			companyID+":"+period.String(),
			event.RequestID,
			event,
		)
		if err == nil {
			err = s.outbox.Create(ctx, &row)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		enqueued++
		s.logger.Info("generation request enqueued",
			zap.String("request_id", event.RequestID),
			zap.String("company_id", companyID),
			zap.String("period", period.String()),
		)
	}
	return enqueued, errors.Join(errs...)
}
