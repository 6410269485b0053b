package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-attend/internal/events"
	"go-attend/internal/notification"
	notificationerrors "go-attend/internal/notification/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeNotificationRequests(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.NotificationRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationService.CreateFromEvent(ctx, event); err != nil {
			// Payload rusak tidak akan membaik dengan retry, langsung commit.
			if errors.Is(err, notificationerrors.ErrInvalidUserID) {
				log.Warn("notification event dropped",
					zap.String("user_id", event.UserID),
					zap.String("event_type", event.EventType),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("persist notification from event failed",
				zap.String("user_id", event.UserID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}

		log.Info("notification persisted from event",
			zap.String("user_id", event.UserID),
			zap.String("event_type", event.EventType),
		)
	}
}
