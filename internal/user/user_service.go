package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go-attend/internal/domain"
	"go-attend/internal/shared/counter"
	usererrors "go-attend/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Deactivate(ctx context.Context, id string) error

	// TeamLeadFor memetakan user ke lead timnya, untuk routing notifikasi.
	// Mengembalikan string kosong jika user tidak punya tim atau lead.
	TeamLeadFor(ctx context.Context, userID string) (string, error)

	// IsActiveUser dipakai modul lain (mis. penunjukan lead tim) untuk
	// memverifikasi user ada dan aktif tanpa membuka seluruh datanya.
	IsActiveUser(ctx context.Context, userID string) (bool, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, counter: counterRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	role := domain.Role(req.Role)
	if !role.Valid() {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	var teamID *uuid.UUID
	if req.TeamID != nil && *req.TeamID != "" {
		parsed, err := uuid.Parse(*req.TeamID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidTeamID
		}
		teamID = &parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
	if err != nil {
		s.logger.Error("create user generate number failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:             uuid.New(),
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       string(hashed),
		Role:           role,
		TeamID:         teamID,
		EmployeeNumber: fmt.Sprintf("ATD-%06d", nextVal),
		IsActive:       true,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("employee_number", u.EmployeeNumber),
		zap.String("role", string(u.Role)),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]UserResponse, len(rows))
	for i, u := range rows {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			return UserResponse{}, usererrors.ErrInvalidRole
		}
		u.Role = role
	}
	if req.TeamID != nil {
		if *req.TeamID == "" {
			u.TeamID = nil
		} else {
			parsed, err := uuid.Parse(*req.TeamID)
			if err != nil {
				return UserResponse{}, usererrors.ErrInvalidTeamID
			}
			u.TeamID = &parsed
		}
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("user updated", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	u.IsActive = false
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}
	s.logger.Info("user deactivated", zap.String("user_id", id))
	return nil
}

func (s *service) TeamLeadFor(ctx context.Context, userID string) (string, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usererrors.ErrUserNotFound
		}
		return "", err
	}
	if u.TeamID == nil {
		return "", nil
	}

	lead, err := s.repo.FindTeamLead(ctx, u.TeamID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	// Lead tidak menotifikasi dirinya sendiri
	if lead.ID.String() == userID {
		return "", nil
	}
	return lead.ID.String(), nil
}

func (s *service) IsActiveUser(ctx context.Context, userID string) (bool, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return false, nil
	}
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsActive, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "email") {
			return usererrors.ErrEmailAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "email") {
		return usererrors.ErrEmailAlreadyExists
	}

	return err
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:             u.ID.String(),
		FullName:       u.FullName,
		Email:          u.Email,
		Role:           string(u.Role),
		EmployeeNumber: u.EmployeeNumber,
		IsActive:       u.IsActive,
	}
	if u.TeamID != nil {
		v := u.TeamID.String()
		resp.TeamID = &v
	}
	return resp
}
