package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go-settlement/internal/config"
	"go-settlement/internal/events"
	"go-settlement/internal/messaging/kafka/consumer"
	"go-settlement/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const generationConsumerGroup = "go-settlement-generation"

// RunConsumer executes generation requests published by the scheduler or
// other services.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	db, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.IsProduction())
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := migrate(db); err != nil {
		return err
	}

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	settlementService := newSettlementService(cfg, db, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.SettlementGenerationRequestedTopic,
		GroupID:        generationConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		consumer.ConsumeSettlementGenerationRequested(ctx, reader, settlementService, logger)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
