package geofence

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=geofence_repo.go -destination=mock/geofence_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, l *Location) error
	FindByID(ctx context.Context, id string) (*Location, error)
	FindAll(ctx context.Context) ([]Location, error)
	FindAllActive(ctx context.Context) ([]Location, error)
	Update(ctx context.Context, l *Location) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Location, error) {
	var l Location
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&l).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context) ([]Location, error) {
	var rows []Location
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllActive(ctx context.Context) ([]Location, error) {
	var rows []Location
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}
