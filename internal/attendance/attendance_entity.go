package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance adalah satu record per (user, tanggal UTC). Index unik
// uq_attendances_user_date adalah penjaga utama "satu sesi per hari":
// check-in ganda yang berpacu akan gagal di constraint ini.
type Attendance struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_attendances_user_date"`
	AttendanceDate time.Time      `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendances_user_date"`
	CheckInTime    time.Time      `gorm:"column:check_in_time;type:timestamptz;not null"`
	CheckInLat     float64        `gorm:"column:check_in_lat;not null"`
	CheckInLng     float64        `gorm:"column:check_in_lng;not null"`
	LocationID     *uuid.UUID     `gorm:"column:location_id;type:uuid"`
	LocationName   string         `gorm:"column:location_name;type:varchar(100);not null"`
	CheckOutTime   *time.Time     `gorm:"column:check_out_time;type:timestamptz"`
	CheckOutLat    *float64       `gorm:"column:check_out_lat"`
	CheckOutLng    *float64       `gorm:"column:check_out_lng"`
	Status         string         `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	WorkDone       *string        `gorm:"column:work_done;type:text"`
	ProjectName    *string        `gorm:"column:project_name;type:varchar(255)"`
	Meetings       *string        `gorm:"column:meetings;type:text"`
	TodoUpdates    *string        `gorm:"column:todo_updates;type:text"`
	Notes          *string        `gorm:"column:notes;type:text"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Breaks         []Break        `gorm:"foreignKey:AttendanceID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

func (a *Attendance) IsCheckedOut() bool {
	return a.CheckOutTime != nil
}

// OpenBreak mengembalikan break yang belum ditutup (end_time null).
// Invarian: maksimal satu yang terbuka pada satu waktu.
func (a *Attendance) OpenBreak() *Break {
	for i := len(a.Breaks) - 1; i >= 0; i-- {
		if a.Breaks[i].EndTime == nil {
			return &a.Breaks[i]
		}
	}
	return nil
}

func (a *Attendance) HasLunchBreak() bool {
	for i := range a.Breaks {
		if a.Breaks[i].Type == BreakLunch {
			return true
		}
	}
	return false
}

const (
	BreakWalking = "WALKING"
	BreakTea     = "TEA"
	BreakLunch   = "LUNCH"
)

// Durasi break diturunkan dari tipe saat dibuat, tidak pernah dari input user.
var breakDurations = map[string]int{
	BreakWalking: 5,
	BreakTea:     15,
	BreakLunch:   60,
}

type Break struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	AttendanceID uuid.UUID  `gorm:"column:attendance_id;type:uuid;not null;index"`
	Type         string     `gorm:"column:type;type:varchar(10);not null"`
	DurationMin  int        `gorm:"column:duration_min;not null"`
	StartTime    time.Time  `gorm:"column:start_time;type:timestamptz;not null"`
	EndTime      *time.Time `gorm:"column:end_time;type:timestamptz"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (Break) TableName() string {
	return "attendance_breaks"
}
