package geofence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Location struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"column:name;type:varchar(100);not null"`
	Latitude     float64   `gorm:"column:latitude;not null"`
	Longitude    float64   `gorm:"column:longitude;not null"`
	RadiusMeters int       `gorm:"column:radius_meters;not null"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Location) TableName() string {
	return "office_locations"
}
