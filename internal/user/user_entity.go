package user

import (
	"time"

	"go-attend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName       string         `gorm:"column:full_name;type:varchar(255);not null"`
	Email          string         `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Password       string         `gorm:"column:password;type:varchar(255);not null"`
	Role           domain.Role    `gorm:"column:role;type:varchar(20);not null;default:'EMPLOYEE'"`
	TeamID         *uuid.UUID     `gorm:"column:team_id;type:uuid;index"`
	EmployeeNumber string         `gorm:"column:employee_number;type:varchar(20);uniqueIndex;not null"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
