package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-attend/internal/events"
	"go-attend/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher adalah capability kirim-notifikasi yang di-inject sekali saat
// start, bukan singleton ambient. Pengiriman best-effort: kegagalan tidak
// boleh ikut menggagalkan operasi yang memicunya.
//
//go:generate mockgen -source=dispatcher.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	Dispatch(ctx context.Context, userID, eventType, title, message string, metadata map[string]any) error
}

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, string, string, string, string, map[string]any) error {
	return nil
}

func NewNoopDispatcher() Dispatcher {
	return noopDispatcher{}
}

// outboxDispatcher menulis event notifikasi ke tabel outbox; worker terpisah
// yang mem-publish ke Kafka. Tulisan ini di luar tx bisnis pemicunya —
// kegagalan cukup di-log.
type outboxDispatcher struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxDispatcher(db *sql.DB, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &outboxDispatcher{
		outbox: kafka.NewOutboxRepository(db),
		logger: l,
	}
}

func (d *outboxDispatcher) Dispatch(ctx context.Context, userID, eventType, title, message string, metadata map[string]any) error {
	event := events.NotificationRequestedEvent{
		EventType:  eventType,
		UserID:     userID,
		Title:      title,
		Message:    message,
		Metadata:   metadata,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("marshal notification event failed",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}

	err = d.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "notification",
		AggregateID:   userID,
		EventType:     eventType,
		Topic:         events.NotificationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		d.logger.Error("queue notification failed",
			zap.String("user_id", userID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}

	d.logger.Debug("notification queued",
		zap.String("user_id", userID),
		zap.String("event_type", eventType),
	)
	return nil
}
