package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-attend/internal/leave"
	leaveerrors "go-attend/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	createFn               func(ctx context.Context, l *leave.Leave) error
	findAllFn              func(ctx context.Context) ([]leave.Leave, error)
	findAllByUserFn        func(ctx context.Context, userID string) ([]leave.Leave, error)
	findByIDFn             func(ctx context.Context, id string) (*leave.Leave, error)
	updateFn               func(ctx context.Context, l *leave.Leave) error
	hasOverlappingPeriodFn func(ctx context.Context, userID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.Leave, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, userID, startDate, endDate, excludeID)
	}
	return false, nil
}

type recordedDispatch struct {
	userID    string
	eventType string
}

type fakeLeaveDispatcher struct {
	dispatched []recordedDispatch
}

func (f *fakeLeaveDispatcher) Dispatch(ctx context.Context, userID, eventType, title, message string, metadata map[string]any) error {
	f.dispatched = append(f.dispatched, recordedDispatch{userID: userID, eventType: eventType})
	return nil
}

type leaveServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  leave.Service
	repo     *fakeLeaveRepository
	notifier *fakeLeaveDispatcher
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	notifier := &fakeLeaveDispatcher{}
	svc := leave.NewService(db, repo, notifier)

	return &leaveServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		notifier: notifier,
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

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			LeaveType: "ANNUAL",
			StartDate: "2026-09-07",
			EndDate:   "2026-09-09",
			Reason:    "Family event",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, uid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			assert.Equal(t, actorID, uid)
			assert.Nil(t, excludeID)
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, uuid.MustParse(actorID), l.UserID)
			assert.Equal(t, "ANNUAL", l.LeaveType)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, leave.StatusPending, l.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, actorID, resp.UserID)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlapping period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, uid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			LeaveType: "ANNUAL",
			StartDate: "2026-09-07",
			EndDate:   "2026-09-08",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid date range", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			LeaveType: "SICK",
			StartDate: "2026-09-10",
			EndDate:   "2026-09-08",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative invalid date format", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			LeaveType: "SICK",
			StartDate: "07-09-2026",
			EndDate:   "2026-09-08",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})
}

func pendingLeave(userID string) *leave.Leave {
	return &leave.Leave{
		ID:        uuid.New(),
		UserID:    uuid.MustParse(userID),
		LeaveType: "ANNUAL",
		StartDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
		TotalDays: 3,
		Status:    leave.StatusPending,
	}
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()
	approverID := uuid.New().String()

	t.Run("success dispatches decision notification", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		row := pendingLeave(ownerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return row, nil
		}

		var updated *leave.Leave
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			updated = l
			return nil
		}

		resp, err := deps.service.Approve(ctx, approverID, row.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, approverID, *resp.ApprovedBy)
		assert.NotNil(t, updated.ApprovedAt)

		assert.Len(t, deps.notifier.dispatched, 1)
		assert.Equal(t, ownerID, deps.notifier.dispatched[0].userID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative cannot approve own leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		row := pendingLeave(ownerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return row, nil
		}

		_, err := deps.service.Approve(ctx, ownerID, row.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrSelfDecision)
		assert.Empty(t, deps.notifier.dispatched)
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		row := pendingLeave(ownerID)
		row.Status = leave.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return row, nil
		}

		_, err := deps.service.Approve(ctx, approverID, row.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Approve(ctx, approverID, uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()
	approverID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		row := pendingLeave(ownerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return row, nil
		}

		resp, err := deps.service.Reject(ctx, approverID, row.ID.String(), "Project deadline")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.Equal(t, "Project deadline", *resp.RejectionReason)
		assert.Nil(t, resp.ApprovedAt)
		assert.Len(t, deps.notifier.dispatched, 1)
	})

	t.Run("negative empty rejection reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		row := pendingLeave(ownerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return row, nil
		}

		_, err := deps.service.Reject(ctx, approverID, row.ID.String(), "")
		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()

	t.Run("success by owner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		row := pendingLeave(ownerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return row, nil
		}

		resp, err := deps.service.Cancel(ctx, ownerID, row.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCanceled, resp.Status)
		// Pembatalan bukan keputusan, tidak ada notifikasi.
		assert.Empty(t, deps.notifier.dispatched)
	})

	t.Run("negative cancel by other user", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		row := pendingLeave(ownerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return row, nil
		}

		_, err := deps.service.Cancel(ctx, uuid.New().String(), row.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotLeaveOwner)
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()

	t.Run("employee only sees own leaves", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByUserFn = func(ctx context.Context, uid string) ([]leave.Leave, error) {
			assert.Equal(t, ownerID, uid)
			return []leave.Leave{*pendingLeave(ownerID)}, nil
		}
		deps.repo.findAllFn = func(ctx context.Context) ([]leave.Leave, error) {
			t.Fatal("FindAll should not be called for unprivileged actor")
			return nil, nil
		}

		resp, err := deps.service.GetAll(ctx, ownerID, false)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, ownerID, resp[0].UserID)
	})

	t.Run("privileged actor sees all", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]leave.Leave, error) {
			return []leave.Leave{*pendingLeave(ownerID), *pendingLeave(uuid.New().String())}, nil
		}

		resp, err := deps.service.GetAll(ctx, ownerID, true)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})
}
