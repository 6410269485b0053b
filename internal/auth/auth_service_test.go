package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"go-attend/internal/auth"
	autherrors "go-attend/internal/auth/errors"
	"go-attend/internal/domain"
	"go-attend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	byEmail map[string]*user.User
	byID    map[string]*user.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byEmail: make(map[string]*user.User),
		byID:    make(map[string]*user.User),
	}
}

func (f *fakeUserRepository) add(u *user.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID.String()] = u
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	f.add(u)
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) FindTeamLead(ctx context.Context, teamID string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	f.add(u)
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepository, password string, active bool) *user.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	u := &user.User{
		ID:             uuid.New(),
		FullName:       "Budi Santoso",
		Email:          "budi@example.com",
		Password:       string(hashed),
		Role:           domain.RoleEmployee,
		EmployeeNumber: "ATD-000001",
		IsActive:       active,
	}
	repo.add(u)
	return u
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success", func(t *testing.T) {
		repo := newFakeUserRepository()
		u := seedUser(t, repo, "supersecret", true)
		svc := auth.NewService(repo)

		access, refresh, resp, err := svc.Login(ctx, "budi@example.com", "supersecret")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, u.ID.String(), resp.ID)
		assert.Equal(t, string(domain.RoleEmployee), resp.Role)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := newFakeUserRepository()
		seedUser(t, repo, "supersecret", true)
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "budi@example.com", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc := auth.NewService(newFakeUserRepository())

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "supersecret")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive user", func(t *testing.T) {
		repo := newFakeUserRepository()
		seedUser(t, repo, "supersecret", false)
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "budi@example.com", "supersecret")
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success round trip", func(t *testing.T) {
		repo := newFakeUserRepository()
		u := seedUser(t, repo, "supersecret", true)
		svc := auth.NewService(repo)

		_, refresh, _, err := svc.Login(ctx, "budi@example.com", "supersecret")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, u.ID.String(), resp.ID)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		svc := auth.NewService(newFakeUserRepository())

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative user deactivated after issue", func(t *testing.T) {
		repo := newFakeUserRepository()
		u := seedUser(t, repo, "supersecret", true)
		svc := auth.NewService(repo)

		_, refresh, _, err := svc.Login(ctx, "budi@example.com", "supersecret")
		assert.NoError(t, err)

		u.IsActive = false

		_, _, _, err = svc.RefreshToken(ctx, refresh)
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := newFakeUserRepository()
		u := seedUser(t, repo, "supersecret", true)
		svc := auth.NewService(repo)

		resp, err := svc.GetMe(ctx, u.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, u.Email, resp.Email)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		svc := auth.NewService(newFakeUserRepository())

		_, err := svc.GetMe(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})
}
