package app

import (
	"context"
	"time"

	"go-attend/internal/messaging/kafka"
	"go-attend/internal/messaging/kafka/producer"
	"go-attend/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker menjalankan outbox publisher sampai menerima sinyal shutdown.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := openDatabase()
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	broker, err := requireKafkaBroker()
	if err != nil {
		return err
	}
	writer, err := connection.ConnectKafkaWithRetry(broker, connectRetries)
	if err != nil {
		return err
	}
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(sqlDB),
		writer,
		logger,
		3*time.Second,
	)

	waitForShutdown(logger)
	logger.Info("worker shutting down")
	return nil
}
