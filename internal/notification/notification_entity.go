package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_read"`
	EventType string    `gorm:"type:varchar(50);not null"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	Metadata  []byte    `gorm:"type:jsonb"`
	IsRead    bool      `gorm:"not null;default:false;index:idx_notifications_user_read"`
	ReadAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Notification) TableName() string {
	return "notifications"
}
