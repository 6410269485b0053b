package team

import (
	"context"
	"errors"
	"net/http"

	"go-attend/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"team not found",
		http.StatusNotFound,
	)
	ErrInvalidLeadID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid lead_id",
		http.StatusBadRequest,
	)
	ErrLeadNotActive = apperror.New(
		apperror.CodeInvalidInput,
		"lead must be an existing active user",
		http.StatusBadRequest,
	)
)

// LeadChecker memverifikasi kandidat lead adalah user yang ada dan aktif.
type LeadChecker interface {
	IsActiveUser(ctx context.Context, userID string) (bool, error)
}

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTeamRequest) (TeamResponse, error)
	GetAll(ctx context.Context) ([]TeamResponse, error)
	GetByID(ctx context.Context, id string) (TeamResponse, error)
	Update(ctx context.Context, id string, req UpdateTeamRequest) (TeamResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	leads  LeadChecker
	logger *zap.Logger
}

func NewService(repo Repository, leads LeadChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{repo: repo, leads: leads, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateTeamRequest) (TeamResponse, error) {
	leadID, err := s.resolveLeadID(ctx, req.LeadID)
	if err != nil {
		return TeamResponse{}, err
	}

	t := &Team{
		ID:     uuid.New(),
		Name:   req.Name,
		LeadID: leadID,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create team persist failed", zap.Error(err))
		return TeamResponse{}, err
	}

	s.logger.Info("team created",
		zap.String("team_id", t.ID.String()),
		zap.String("name", t.Name),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TeamResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]TeamResponse, len(rows))
	for i, t := range rows {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TeamResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeamResponse{}, ErrTeamNotFound
		}
		return TeamResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTeamRequest) (TeamResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeamResponse{}, ErrTeamNotFound
		}
		return TeamResponse{}, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.LeadID != nil {
		leadID, err := s.resolveLeadID(ctx, req.LeadID)
		if err != nil {
			return TeamResponse{}, err
		}
		t.LeadID = leadID
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update team persist failed",
			zap.String("team_id", id),
			zap.Error(err),
		)
		return TeamResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// resolveLeadID memvalidasi lead_id: harus uuid dan menunjuk user aktif.
// String kosong berarti tim tanpa lead.
func (s *service) resolveLeadID(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		return nil, ErrInvalidLeadID
	}
	active, err := s.leads.IsActiveUser(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrLeadNotActive
	}
	return &parsed, nil
}

func mapToResponse(t Team) TeamResponse {
	resp := TeamResponse{
		ID:   t.ID.String(),
		Name: t.Name,
	}
	if t.LeadID != nil {
		v := t.LeadID.String()
		resp.LeadID = &v
	}
	return resp
}
