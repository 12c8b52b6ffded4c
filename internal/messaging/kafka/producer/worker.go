package producer

import (
	"context"
	"time"

	"go-settlement/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	defaultBatchSize    = 50
	defaultPollInterval = 3 * time.Second
)

// Relay copies pending outbox rows to Kafka. Delivery is at-least-once:
// a row written but not marked sent is published again on the next poll.
type Relay struct {
	repo      kafka.OutboxRepository
	writer    MessageWriter
	batchSize int
	logger    *zap.Logger
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("kafka.producer.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.relay")
	}
	return &Relay{repo: repo, writer: writer, batchSize: defaultBatchSize, logger: l}
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context, pollInterval time.Duration) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, _, err := r.ProcessOnce(ctx); err != nil {
				r.logger.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessOnce relays one batch. A failed publish is recorded on the row
// for retry and does not stop the batch.
func (r *Relay) ProcessOnce(ctx context.Context) (sent, failed int, err error) {
	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return 0, 0, err
	}
	if len(events) == 0 {
		return 0, 0, nil
	}

	r.logger.Debug("processing pending outbox events", zap.Int("count", len(events)))
	for _, event := range events {
		fields := []zap.Field{
			zap.Stringer("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		}

		if err := r.writer.WriteMessages(ctx, toMessage(event)); err != nil {
			failed++
			r.logger.Error("publish outbox event failed",
				append(fields, zap.Int("retry_count", event.RetryCount), zap.Error(err))...)
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				r.logger.Error("mark outbox event failed", append(fields, zap.Error(markErr))...)
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark outbox event sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
		r.logger.Info("outbox event sent", fields...)
	}
	return sent, failed, nil
}
