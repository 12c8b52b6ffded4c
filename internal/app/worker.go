package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-settlement/internal/config"
	"go-settlement/internal/messaging/kafka"
	"go-settlement/internal/messaging/kafka/producer"
	"go-settlement/internal/scheduler"
	"go-settlement/internal/settlement"
	"go-settlement/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays the outbox to Kafka and, when configured, schedules
// periodic generation requests.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	db, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.IsProduction())
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := kafka.Migrate(db); err != nil {
		return err
	}

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DB.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(db)

	var sched *scheduler.GenerationScheduler
	if cfg.AutoGenerateCron != "" {
		sched, err = scheduler.NewGenerationScheduler(
			cfg.AutoGenerateCron,
			outboxRepo,
			cfg.AutoGenerateCompanyIDs,
			settlement.SystemClock{},
			logger,
		)
		if err != nil {
			return err
		}
		sched.Start()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.NewRelay(outboxRepo, kafkaWriter, logger).Run(ctx, cfg.OutboxPollInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()
	if sched != nil {
		stopCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		sched.Stop(stopCtx)
	}

	return nil
}
