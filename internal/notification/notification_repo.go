package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindAllByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	FindByIDAndUser(ctx context.Context, id, userID string) (*Notification, error)
	Update(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}

	var rows []Notification
	err := db.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, id, userID string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) Update(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *repository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Updates(map[string]any{"is_read": true, "read_at": now})
	return res.RowsAffected, res.Error
}
