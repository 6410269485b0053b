package geofence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	geofenceerrors "go-attend/internal/geofence/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const ActiveLocationsCacheKey = "geofence:locations:active"

//go:generate mockgen -source=geofence_service.go -destination=mock/geofence_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	GetAll(ctx context.Context) ([]LocationResponse, error)
	GetByID(ctx context.Context, id string) (LocationResponse, error)
	Update(ctx context.Context, id string, req UpdateLocationRequest) (LocationResponse, error)
	Deactivate(ctx context.Context, id string) error

	// ListActive adalah hot path check-in: hasilnya di-cache di Redis dan
	// lookup paralel di-collapse lewat singleflight.
	ListActive(ctx context.Context) ([]Location, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("geofence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geofence.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error) {
	if !ValidateCoordinates(req.Latitude, req.Longitude) {
		return LocationResponse{}, geofenceerrors.ErrInvalidCoordinate
	}
	if req.RadiusMeters < 1 || req.RadiusMeters > 1000 {
		return LocationResponse{}, geofenceerrors.ErrInvalidRadius
	}

	l := &Location{
		ID:           uuid.New(),
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("create location persist failed", zap.Error(err))
		return LocationResponse{}, err
	}

	s.invalidateActiveCache(ctx)
	s.logger.Info("office location created",
		zap.String("location_id", l.ID.String()),
		zap.String("name", l.Name),
		zap.Int("radius_meters", l.RadiusMeters),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LocationResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]LocationResponse, len(rows))
	for i, l := range rows {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LocationResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LocationResponse{}, geofenceerrors.ErrLocationNotFound
		}
		return LocationResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLocationRequest) (LocationResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LocationResponse{}, geofenceerrors.ErrLocationNotFound
		}
		return LocationResponse{}, err
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Latitude != nil {
		l.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		l.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		l.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}

	if !ValidateCoordinates(l.Latitude, l.Longitude) {
		return LocationResponse{}, geofenceerrors.ErrInvalidCoordinate
	}
	if l.RadiusMeters < 1 || l.RadiusMeters > 1000 {
		return LocationResponse{}, geofenceerrors.ErrInvalidRadius
	}

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("update location persist failed",
			zap.String("location_id", id),
			zap.Error(err),
		)
		return LocationResponse{}, err
	}

	s.invalidateActiveCache(ctx)
	s.logger.Info("office location updated", zap.String("location_id", id))
	return mapToResponse(*l), nil
}

// Deactivate hanya mematikan flag is_active. Lokasi tidak pernah dihapus
// keras selama masih direferensikan record absensi.
func (s *service) Deactivate(ctx context.Context, id string) error {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return geofenceerrors.ErrLocationNotFound
		}
		return err
	}

	l.IsActive = false
	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("deactivate location persist failed",
			zap.String("location_id", id),
			zap.Error(err),
		)
		return err
	}

	s.invalidateActiveCache(ctx)
	s.logger.Info("office location deactivated", zap.String("location_id", id))
	return nil
}

func (s *service) ListActive(ctx context.Context) ([]Location, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ActiveLocationsCacheKey).Result(); err == nil {
			var rows []Location
			if json.Unmarshal([]byte(cached), &rows) == nil {
				return rows, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ActiveLocationsCacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAllActive(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(rows); err == nil {
				s.rdb.Set(ctx, ActiveLocationsCacheKey, jsonData, 10*time.Minute)
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Location), nil
}

func (s *service) invalidateActiveCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ActiveLocationsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate active locations cache",
			zap.Error(err),
			zap.String("key", ActiveLocationsCacheKey),
		)
	}
}

func mapToResponse(l Location) LocationResponse {
	return LocationResponse{
		ID:           l.ID.String(),
		Name:         l.Name,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		RadiusMeters: l.RadiusMeters,
		IsActive:     l.IsActive,
	}
}
