package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	// FindByUserAndDateForUpdate mengunci row harian (SELECT ... FOR UPDATE)
	// agar mutasi break/checkout yang berpacu terserialisasi.
	FindByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	CreateBreak(ctx context.Context, b *Break) error
	UpdateBreak(ctx context.Context, b *Break) error
	FindAllByUser(ctx context.Context, userID string) ([]Attendance, error)
	FindAll(ctx context.Context) ([]Attendance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx mengikat repository ke transaksi sql yang sedang berjalan, supaya
// row lock dan insert berada dalam tx yang sama dengan commit milik service.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: gdb}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Preload("Breaks", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Where("user_id = ?", userID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Where("attendance_id = ?", a.ID).
		Order("start_time ASC").
		Find(&a.Breaks).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Breaks").Save(a).Error
}

func (r *repository) CreateBreak(ctx context.Context, b *Break) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) UpdateBreak(ctx context.Context, b *Break) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Breaks", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Where("user_id = ?", userID).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Breaks", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Order("attendance_date DESC, check_in_time DESC").
		Find(&rows).Error
	return rows, err
}
