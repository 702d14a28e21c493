package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"proryx/internal/config"
	"proryx/internal/messaging/kafka"
	"proryx/internal/messaging/kafka/consumer"
	"proryx/internal/renter"
	"proryx/internal/shared/connection"
	"proryx/internal/tenancy"

	"go.uber.org/zap"
)

// RunConsumer runs the renter event consumers. Each consumer rebuilds
// its tenant context from the event payload before touching any data.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

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

	seqRepo := tenancy.NewSequenceRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	renterRepo := renter.NewRepository(gormDB, seqRepo)
	renterService := renter.NewService(gormDB, renterRepo, outboxRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeRenterLifecycle(ctx, cfg.KafkaBroker, "proryx-renter-documents", renterService, logger)
	go consumer.ConsumeRenterKYCRequests(ctx, cfg.KafkaBroker, "proryx-renter-kyc", renterService, logger)

	logger.Info("renter consumers started", zap.String("broker", cfg.KafkaBroker))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("consumer shutting down", zap.String("signal", sig.String()))
	return nil
}
