package app

import (
	"context"

	"go-attend/internal/events"
	"go-attend/internal/messaging/kafka/consumer"
	"go-attend/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer menjalankan consumer group notifikasi sampai menerima sinyal
// shutdown. Commit offset manual per message, diatur di dalam consumer.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	notificationService := notification.NewService(notification.NewRepository(gormDB))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          events.NotificationTopic,
		GroupID:        "go-attend-notification",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeNotificationRequests(ctx, reader, notificationService, logger)

	waitForShutdown(logger)
	logger.Info("consumer shutting down")
	return nil
}
