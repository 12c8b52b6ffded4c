package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-settlement/internal/events"
	"go-settlement/internal/settlement"
	"go-settlement/internal/shared/apperror"
	"go-settlement/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const generateAttempts = 3

var retryBackoff = 2 * time.Second

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Generator runs settlement generation. settlement.Service satisfies it.
type Generator interface {
	Generate(ctx context.Context, companyID, actorID string, req settlement.GenerateRequest) ([]settlement.GenerationResultResponse, error)
}

// ConsumeSettlementGenerationRequested runs generation for each request on
// the topic until ctx is cancelled. Generation is idempotent so a message
// redelivered after a crash only reports skips.
func ConsumeSettlementGenerationRequested(
	ctx context.Context,
	reader MessageReader,
	generator Generator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.settlement_generation")
	log.Info("settlement generation consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("settlement generation consumer stopped")
				return
			}
			log.Error("fetch settlement generation message failed", zap.Error(err))
			continue
		}

		if handled := handleGenerationRequest(ctx, generator, msg, log); !handled {
			if ctx.Err() != nil {
				log.Info("settlement generation consumer stopped")
				return
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit settlement generation message failed", zap.Error(err))
		}
	}
}

// handleGenerationRequest reports whether msg is finished with and may be
// committed. Malformed or rejected requests are committed so they do not
// block the partition.
func handleGenerationRequest(ctx context.Context, generator Generator, msg kafkago.Message, log *zap.Logger) bool {
	var event events.SettlementGenerationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode settlement generation event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return true
	}

	reqCtx := contextutil.WithRequestID(ctx, event.RequestID)
	fields := []zap.Field{
		zap.String("request_id", event.RequestID),
		zap.String("company_id", event.CompanyID),
		zap.String("period", event.Period),
		zap.String("category", event.Category),
	}

	var err error
	for attempt := 1; attempt <= generateAttempts; attempt++ {
		var results []settlement.GenerationResultResponse
		results, err = generator.Generate(reqCtx, event.CompanyID, event.RequestedBy, settlement.GenerateRequest{
			Period:   event.Period,
			Category: event.Category,
		})
		if err == nil {
			created, skipped := 0, 0
			for _, r := range results {
				created += r.CreatedCount
				skipped += r.SkippedCount
			}
			log.Info("settlement generation completed",
				append(fields, zap.Int("created", created), zap.Int("skipped", skipped))...)
			return true
		}
		if !isRetryable(err) {
			log.Warn("settlement generation request rejected", append(fields, zap.Error(err))...)
			return true
		}

		log.Warn("settlement generation failed, retrying",
			append(fields, zap.Int("attempt", attempt), zap.Error(err))...)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}

	log.Error("settlement generation gave up", append(fields, zap.Error(err))...)
	return false
}

// isRetryable treats server-side and unknown failures as transient. Input
// errors will fail the same way on every attempt.
func isRetryable(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus >= http.StatusInternalServerError
	}
	return true
}
