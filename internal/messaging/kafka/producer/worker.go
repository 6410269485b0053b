package producer

import (
	"context"
	"time"

	"go-attend/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultBatchSize = 50

// ProcessOutboxEvents mem-pump tabel outbox ke Kafka sampai ctx selesai.
// Event yang gagal di-publish ditandai failed dan dicoba ulang oleh tick
// berikutnya sesuai jadwal retry di tabel.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := drainPending(ctx, repo, writer, log); err != nil {
				log.Error("drain outbox failed", zap.Error(err))
			}
		}
	}
}

func drainPending(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	log *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, defaultBatchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	log.Info("publishing pending outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		}

		if err := publishEvent(ctx, writer, event); err != nil {
			log.Error("publish outbox event failed", append(fields, zap.Error(err))...)
			// Status failed menjadwalkan retry; bukan alasan menghentikan batch.
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}

		log.Info("outbox event sent", fields...)
	}

	return nil
}
