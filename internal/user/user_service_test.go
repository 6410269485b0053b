package user_test

import (
	"context"
	"database/sql"
	"testing"

	"go-attend/internal/domain"
	"go-attend/internal/user"
	usererrors "go-attend/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	withTxFn       func(tx *sql.Tx) user.Repository
	createFn       func(ctx context.Context, u *user.User) error
	findByIDFn     func(ctx context.Context, id string) (*user.User, error)
	findByEmailFn  func(ctx context.Context, email string) (*user.User, error)
	findAllFn      func(ctx context.Context) ([]user.User, error)
	findTeamLeadFn func(ctx context.Context, teamID string) (*user.User, error)
	updateFn       func(ctx context.Context, u *user.User) error
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindTeamLead(ctx context.Context, teamID string) (*user.User, error) {
	if f.findTeamLeadFn != nil {
		return f.findTeamLeadFn(ctx, teamID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type userServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service user.Service
	repo    *fakeUserRepository
}

func setupUserServiceTest(t *testing.T) *userServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeUserRepository{}
	svc := user.NewService(db, repo, &fakeCounterRepository{})

	return &userServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		var created *user.User
		deps.repo.createFn = func(ctx context.Context, u *user.User) error {
			created = u
			return nil
		}

		resp, err := deps.service.Create(ctx, user.CreateUserRequest{
			FullName: "Budi Santoso",
			Email:    "budi@example.com",
			Password: "supersecret",
			Role:     "EMPLOYEE",
		})

		assert.NoError(t, err)
		assert.Equal(t, "ATD-000001", resp.EmployeeNumber)
		assert.True(t, resp.IsActive)
		assert.NotNil(t, created)
		assert.Equal(t, domain.RoleEmployee, created.Role)
		// Password tersimpan sebagai hash bcrypt, bukan plaintext.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("supersecret")))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid role", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			FullName: "Budi Santoso",
			Email:    "budi@example.com",
			Password: "supersecret",
			Role:     "SUPERVISOR",
		})
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("negative invalid team id", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		badTeam := "not-a-uuid"
		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			FullName: "Budi Santoso",
			Email:    "budi@example.com",
			Password: "supersecret",
			Role:     "EMPLOYEE",
			TeamID:   &badTeam,
		})
		assert.ErrorIs(t, err, usererrors.ErrInvalidTeamID)
	})
}

func TestUserService_TeamLeadFor(t *testing.T) {
	ctx := context.Background()
	teamID := uuid.New()
	leadID := uuid.New()
	memberID := uuid.New()

	memberRow := func() *user.User {
		return &user.User{
			ID:     memberID,
			Role:   domain.RoleEmployee,
			TeamID: &teamID,
		}
	}

	t.Run("resolves lead of member team", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return memberRow(), nil
		}
		deps.repo.findTeamLeadFn = func(ctx context.Context, tid string) (*user.User, error) {
			assert.Equal(t, teamID.String(), tid)
			return &user.User{ID: leadID, Role: domain.RoleTeamLead}, nil
		}

		got, err := deps.service.TeamLeadFor(ctx, memberID.String())
		assert.NoError(t, err)
		assert.Equal(t, leadID.String(), got)
	})

	t.Run("empty for user without team", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: memberID, Role: domain.RoleEmployee}, nil
		}

		got, err := deps.service.TeamLeadFor(ctx, memberID.String())
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty when team has no lead", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return memberRow(), nil
		}

		got, err := deps.service.TeamLeadFor(ctx, memberID.String())
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("lead does not notify themselves", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: leadID, Role: domain.RoleTeamLead, TeamID: &teamID}, nil
		}
		deps.repo.findTeamLeadFn = func(ctx context.Context, tid string) (*user.User, error) {
			return &user.User{ID: leadID, Role: domain.RoleTeamLead}, nil
		}

		got, err := deps.service.TeamLeadFor(ctx, leadID.String())
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success clears team", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		teamID := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, uid string) (*user.User, error) {
			return &user.User{ID: id, Role: domain.RoleEmployee, TeamID: &teamID, IsActive: true}, nil
		}

		empty := ""
		resp, err := deps.service.Update(ctx, id.String(), user.UpdateUserRequest{TeamID: &empty})
		assert.NoError(t, err)
		assert.Nil(t, resp.TeamID)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, id.String(), user.UpdateUserRequest{})
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	deps := setupUserServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, uid string) (*user.User, error) {
		return &user.User{ID: id, Role: domain.RoleEmployee, IsActive: true}, nil
	}

	var updated *user.User
	deps.repo.updateFn = func(ctx context.Context, u *user.User) error {
		updated = u
		return nil
	}

	assert.NoError(t, deps.service.Deactivate(ctx, id.String()))
	assert.False(t, updated.IsActive)
}

func TestUserService_IsActiveUser(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	deps := setupUserServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, uid string) (*user.User, error) {
		if uid == id.String() {
			return &user.User{ID: id, Role: domain.RoleEmployee, IsActive: true}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	active, err := deps.service.IsActiveUser(ctx, id.String())
	assert.NoError(t, err)
	assert.True(t, active)

	active, err = deps.service.IsActiveUser(ctx, uuid.NewString())
	assert.NoError(t, err)
	assert.False(t, active)

	active, err = deps.service.IsActiveUser(ctx, "not-a-uuid")
	assert.NoError(t, err)
	assert.False(t, active)
}
