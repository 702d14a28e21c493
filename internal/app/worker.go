package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"proryx/internal/config"
	"proryx/internal/messaging/kafka"
	"proryx/internal/messaging/kafka/producer"
	"proryx/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunWorker polls the outbox table and relays pending events to Kafka.
// It runs as its own process so a broker outage never slows the API.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.ConnectionRetries,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectionRetries); err != nil {
		return err
	}

	// The topic comes from each outbox row, so the writer stays
	// topic-agnostic.
	kafkaWriter := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBroker),
		Balancer:               &kafkago.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.OutboxPollPeriod,
		cfg.OutboxBatchSize,
	)

	logger.Info("outbox worker started",
		zap.Duration("poll_period", cfg.OutboxPollPeriod),
		zap.Int("batch_size", cfg.OutboxBatchSize),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("worker shutting down", zap.String("signal", sig.String()))
	return nil
}
