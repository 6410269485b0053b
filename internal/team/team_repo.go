package team

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=team_repo.go -destination=mock/team_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, t *Team) error
	FindByID(ctx context.Context, id string) (*Team, error)
	FindAll(ctx context.Context) ([]Team, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Team) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Team, error) {
	var t Team
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	return &t, err
}

func (r *repository) FindAll(ctx context.Context) ([]Team, error) {
	var rows []Team
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, t *Team) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Team{}).Error
}
