package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-attend/internal/events"
	leaveerrors "go-attend/internal/leave/errors"
	"go-attend/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELLED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier notification.Dispatcher
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, notifier notification.Dispatcher, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if notifier == nil {
		notifier = notification.NewNoopDispatcher()
	}
	return &service{db: db, repo: repo, notifier: notifier, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("actor_id", actorID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actorUUID, startDate, endDate, err := validateCreateRequest(actorID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, actorID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("user_id", actorID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	l := &Leave{
		ID:        uuid.New(),
		UserID:    actorUUID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: totalDays,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", actorID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}

	var (
		leaves []Leave
		err    error
	)
	if canReadAll {
		leaves, err = s.repo.FindAll(ctx)
	} else {
		leaves, err = s.repo.FindAllByUser(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transitionLeaveStatus(ctx, actorID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error) {
	return s.transitionLeaveStatus(ctx, actorID, id, StatusRejected, &rejectionReason)
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transitionLeaveStatus(ctx, actorID, id, StatusCanceled, nil)
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return false
	}

	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusApproved ||
			targetStatus == StatusRejected ||
			targetStatus == StatusCanceled
	default:
		return false
	}
}

func (s *service) transitionLeaveStatus(ctx context.Context, actorID, id, targetStatus string, rejectionReason *string) (LeaveResponse, error) {
	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !isAllowedStatusTransition(l.Status, targetStatus) {
		s.logger.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	switch targetStatus {
	case StatusCanceled:
		// Cancel hanya oleh pemilik cuti
		if l.UserID != actorUUID {
			return LeaveResponse{}, leaveerrors.ErrNotLeaveOwner
		}
	default:
		// Approve/reject tidak boleh untuk cuti sendiri
		if l.UserID == actorUUID {
			return LeaveResponse{}, leaveerrors.ErrSelfDecision
		}
	}

	l.Status = targetStatus
	switch targetStatus {
	case StatusApproved:
		l.ApprovedBy = &actorUUID
		now := time.Now().UTC()
		l.ApprovedAt = &now
		l.RejectionReason = nil
	case StatusRejected:
		if rejectionReason == nil || *rejectionReason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		l.ApprovedBy = &actorUUID
		l.ApprovedAt = nil
		l.RejectionReason = rejectionReason
	default:
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = nil
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("transition leave status persist failed",
			zap.String("leave_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave status commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)

	if targetStatus == StatusApproved || targetStatus == StatusRejected {
		s.notifyDecision(ctx, l, actorID)
	}

	return mapToResponse(*l), nil
}

// notifyDecision best-effort: kegagalan notifikasi tidak membatalkan keputusan.
func (s *service) notifyDecision(ctx context.Context, l *Leave, actorID string) {
	title := "Leave request approved"
	if l.Status == StatusRejected {
		title = "Leave request rejected"
	}
	message := fmt.Sprintf("Your %s leave from %s to %s is %s",
		l.LeaveType,
		l.StartDate.Format("2006-01-02"),
		l.EndDate.Format("2006-01-02"),
		l.Status,
	)

	err := s.notifier.Dispatch(ctx, l.UserID.String(), events.EventLeaveDecision, title, message, map[string]any{
		"leave_id":   l.ID.String(),
		"status":     l.Status,
		"decided_by": actorID,
	})
	if err != nil {
		s.logger.Warn("leave decision notification dispatch failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
	}
}

func validateCreateRequest(actorID string, req CreateLeaveRequest) (uuid.UUID, time.Time, time.Time, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return actorUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		LeaveType: l.LeaveType,
		StartDate: l.StartDate.Format("2006-01-02"),
		EndDate:   l.EndDate.Format("2006-01-02"),
		TotalDays: l.TotalDays,
		Reason:    l.Reason,
		Status:    l.Status,
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
