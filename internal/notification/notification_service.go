package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-attend/internal/events"
	notificationerrors "go-attend/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	CreateFromEvent(ctx context.Context, event events.NotificationRequestedEvent) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id string) (NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateFromEvent(ctx context.Context, event events.NotificationRequestedEvent) error {
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		s.logger.Warn("notification event with invalid user id dropped",
			zap.String("user_id", event.UserID),
			zap.String("event_type", event.EventType),
		)
		return notificationerrors.ErrInvalidUserID
	}

	var metadata []byte
	if event.Metadata != nil {
		metadata, err = json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
	}

	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		EventType: event.EventType,
		Title:     event.Title,
		Message:   event.Message,
		Metadata:  metadata,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("persist notification failed",
			zap.String("user_id", event.UserID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("notification persisted",
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", event.UserID),
		zap.String("event_type", event.EventType),
	)
	return nil
}

func (s *service) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, notificationerrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindAllByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) (NotificationResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidUserID
	}

	n, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}

	if !n.IsRead {
		now := time.Now().UTC()
		n.IsRead = true
		n.ReadAt = &now
		if err := s.repo.Update(ctx, n); err != nil {
			return NotificationResponse{}, err
		}
	}

	return mapToResponse(*n), nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return 0, notificationerrors.ErrInvalidUserID
	}
	return s.repo.MarkAllRead(ctx, userID)
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		EventType: n.EventType,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if len(n.Metadata) > 0 {
		var metadata map[string]any
		if err := json.Unmarshal(n.Metadata, &metadata); err == nil {
			resp.Metadata = metadata
		}
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
