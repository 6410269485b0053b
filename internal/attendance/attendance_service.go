package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	attendanceerrors "go-attend/internal/attendance/errors"
	"go-attend/internal/events"
	"go-attend/internal/geofence"
	"go-attend/internal/notification"
	"go-attend/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LocationProvider memasok daftar lokasi kantor aktif, urutannya stabil
// (urutan pembuatan). Urutan ini menentukan pemenang geofence yang overlap.
type LocationProvider interface {
	ListActive(ctx context.Context) ([]geofence.Location, error)
}

// TeamLeadResolver memetakan user ke team lead-nya untuk routing notifikasi.
type TeamLeadResolver interface {
	TeamLeadFor(ctx context.Context, userID string) (string, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (CheckInResponse, error)
	CheckOut(ctx context.Context, userID string, req CheckOutRequest) (CheckOutResponse, error)
	StartBreak(ctx context.Context, userID string, req StartBreakRequest) (StartBreakResponse, error)
	EndBreak(ctx context.Context, userID string) (EndBreakResponse, error)
	GetToday(ctx context.Context, userID string) (AttendanceResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]AttendanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	locations LocationProvider
	policy    Policy
	notifier  notification.Dispatcher
	leads     TeamLeadResolver
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	locations LocationProvider,
	policy Policy,
	notifier notification.Dispatcher,
	leads TeamLeadResolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if notifier == nil {
		notifier = notification.NewNoopDispatcher()
	}
	return &service{
		db:        db,
		repo:      repo,
		locations: locations,
		policy:    policy,
		notifier:  notifier,
		leads:     leads,
		logger:    l,
	}
}

// log memakai logger request-scoped (bawa request_id) kalau middleware sudah
// menaruhnya di context, fallback ke logger service.
func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

// dayKey menormalkan "hari ini" ke UTC midnight. Dihitung sekali per request
// agar check-in dan check-out di hari fisik yang sama selalu menunjuk record
// yang sama, apapun timezone server.
func dayKey(now time.Time) time.Time {
	return now.UTC().Truncate(24 * time.Hour)
}

func (s *service) CheckIn(ctx context.Context, userID string, req CheckInRequest) (CheckInResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return CheckInResponse{}, attendanceerrors.ErrInvalidUserID
	}
	if req.Latitude == nil || req.Longitude == nil ||
		!geofence.ValidateCoordinates(*req.Latitude, *req.Longitude) {
		return CheckInResponse{}, attendanceerrors.ErrInvalidCoordinate
	}
	lat, lng := *req.Latitude, *req.Longitude

	now := time.Now().UTC()
	today := dayKey(now)

	active, err := s.locations.ListActive(ctx)
	if err != nil {
		s.log(ctx).Error("check-in list active locations failed", zap.Error(err))
		return CheckInResponse{}, err
	}
	if len(active) == 0 {
		s.log(ctx).Warn("check-in rejected, no active locations configured",
			zap.String("user_id", userID),
		)
		return CheckInResponse{}, attendanceerrors.ErrNoLocationsConfigured
	}

	matched := geofence.Locate(lat, lng, active)
	var (
		locationID   *uuid.UUID
		locationName string
	)
	switch {
	case matched != nil:
		id := matched.ID
		locationID = &id
		locationName = matched.Name
	case s.policy.SkipGeofence:
		// Escape hatch test/bootstrap: lokasi sintetis, tanpa referensi.
		locationName = "Remote"
	default:
		nearest, dist := geofence.Nearest(lat, lng, active)
		s.log(ctx).Warn("check-in rejected outside geofence",
			zap.String("user_id", userID),
			zap.Float64("latitude", lat),
			zap.Float64("longitude", lng),
			zap.String("nearest_location", nearest.Name),
			zap.Float64("nearest_distance_m", dist),
		)
		return CheckInResponse{}, attendanceerrors.ErrOutsideGeofence
	}

	status := s.policy.ClassifyCheckIn(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log(ctx).Error("check-in begin tx failed", zap.Error(err))
		return CheckInResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByUserAndDate(ctx, userID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return CheckInResponse{}, err
	}
	if err == nil && existing != nil {
		return CheckInResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	row := &Attendance{
		ID:             uuid.New(),
		UserID:         uuid.MustParse(userID),
		AttendanceDate: today,
		CheckInTime:    now,
		CheckInLat:     lat,
		CheckInLng:     lng,
		LocationID:     locationID,
		LocationName:   locationName,
		Status:         status,
	}

	// Constraint unik (user_id, attendance_date) adalah penjaga terakhir:
	// dari N check-in simultan tepat satu insert yang menang, sisanya
	// dipetakan ke AlreadyCheckedIn oleh mapper di bawah.
	if err := qtx.Create(ctx, row); err != nil {
		return CheckInResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.log(ctx).Error("check-in commit failed", zap.Error(err))
		return CheckInResponse{}, err
	}

	s.log(ctx).Info("check-in success",
		zap.String("user_id", userID),
		zap.String("status", status),
		zap.String("location", locationName),
	)

	if status != StatusPresent {
		s.notifyLateArrival(ctx, userID, status, locationName, now)
	}

	return CheckInResponse{
		ID:           row.ID.String(),
		Status:       status,
		LocationName: locationName,
		CheckInTime:  now.Format(time.RFC3339),
	}, nil
}

func (s *service) StartBreak(ctx context.Context, userID string, req StartBreakRequest) (StartBreakResponse, error) {
	duration, ok := breakDurations[req.Type]
	if !ok {
		return StartBreakResponse{}, attendanceerrors.ErrInvalidBreakType
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log(ctx).Error("start break begin tx failed", zap.Error(err))
		return StartBreakResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByUserAndDateForUpdate(ctx, userID, dayKey(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StartBreakResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return StartBreakResponse{}, err
	}
	if row.IsCheckedOut() {
		return StartBreakResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}
	if row.OpenBreak() != nil {
		return StartBreakResponse{}, attendanceerrors.ErrBreakAlreadyActive
	}
	if req.Type == BreakLunch && row.HasLunchBreak() {
		return StartBreakResponse{}, attendanceerrors.ErrLunchAlreadyTaken
	}

	b := &Break{
		ID:           uuid.New(),
		AttendanceID: row.ID,
		Type:         req.Type,
		DurationMin:  duration,
		StartTime:    now,
	}
	if err := qtx.CreateBreak(ctx, b); err != nil {
		s.log(ctx).Error("start break persist failed", zap.Error(err))
		return StartBreakResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.log(ctx).Error("start break commit failed", zap.Error(err))
		return StartBreakResponse{}, err
	}

	s.log(ctx).Info("break started",
		zap.String("user_id", userID),
		zap.String("type", req.Type),
		zap.Int("duration_min", duration),
	)
	return StartBreakResponse{
		ID:          b.ID.String(),
		Type:        b.Type,
		DurationMin: duration,
		StartTime:   now.Format(time.RFC3339),
	}, nil
}

func (s *service) EndBreak(ctx context.Context, userID string) (EndBreakResponse, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log(ctx).Error("end break begin tx failed", zap.Error(err))
		return EndBreakResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByUserAndDateForUpdate(ctx, userID, dayKey(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EndBreakResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return EndBreakResponse{}, err
	}

	open := row.OpenBreak()
	if open == nil {
		return EndBreakResponse{}, attendanceerrors.ErrNoActiveBreak
	}

	open.EndTime = &now
	if err := qtx.UpdateBreak(ctx, open); err != nil {
		s.log(ctx).Error("end break persist failed", zap.Error(err))
		return EndBreakResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.log(ctx).Error("end break commit failed", zap.Error(err))
		return EndBreakResponse{}, err
	}

	s.log(ctx).Info("break ended",
		zap.String("user_id", userID),
		zap.String("type", open.Type),
	)
	return EndBreakResponse{
		ID:      open.ID.String(),
		Type:    open.Type,
		EndTime: now.Format(time.RFC3339),
	}, nil
}

func (s *service) CheckOut(ctx context.Context, userID string, req CheckOutRequest) (CheckOutResponse, error) {
	if req.Latitude == nil || req.Longitude == nil ||
		!geofence.ValidateCoordinates(*req.Latitude, *req.Longitude) {
		return CheckOutResponse{}, attendanceerrors.ErrInvalidCoordinate
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log(ctx).Error("check-out begin tx failed", zap.Error(err))
		return CheckOutResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByUserAndDateForUpdate(ctx, userID, dayKey(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckOutResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return CheckOutResponse{}, err
	}
	if row.IsCheckedOut() {
		return CheckOutResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}
	if row.OpenBreak() != nil {
		return CheckOutResponse{}, attendanceerrors.ErrBreakStillActive
	}

	hoursWorked := math.Round(now.Sub(row.CheckInTime).Hours()*100) / 100

	row.CheckOutTime = &now
	row.CheckOutLat = req.Latitude
	row.CheckOutLng = req.Longitude
	row.Status = s.policy.ClassifyCheckOut(now, row.Status)
	row.WorkDone = req.WorkDone
	row.ProjectName = req.ProjectName
	row.Meetings = req.Meetings
	row.TodoUpdates = req.TodoUpdates
	row.Notes = req.Notes

	if err := qtx.Update(ctx, row); err != nil {
		s.log(ctx).Error("check-out persist failed", zap.Error(err))
		return CheckOutResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.log(ctx).Error("check-out commit failed", zap.Error(err))
		return CheckOutResponse{}, err
	}

	s.log(ctx).Info("check-out success",
		zap.String("user_id", userID),
		zap.String("status", row.Status),
		zap.Float64("hours_worked", hoursWorked),
	)

	if err := s.notifier.Dispatch(ctx, userID, events.EventCheckedOut,
		"Checked out",
		fmt.Sprintf("You worked %.2f hours today.", hoursWorked),
		map[string]any{"hours_worked": hoursWorked, "status": row.Status},
	); err != nil {
		s.log(ctx).Warn("check-out notification dispatch failed", zap.Error(err))
	}

	return CheckOutResponse{
		ID:           row.ID.String(),
		Status:       row.Status,
		HoursWorked:  hoursWorked,
		CheckOutTime: now.Format(time.RFC3339),
	}, nil
}

func (s *service) GetToday(ctx context.Context, userID string) (AttendanceResponse, error) {
	row, err := s.repo.FindByUserAndDate(ctx, userID, dayKey(time.Now().UTC()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoAttendanceToday
		}
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]AttendanceResponse, error) {
	var (
		rows []Attendance
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAll(ctx)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, attendanceerrors.ErrInvalidUserID
		}
		rows, err = s.repo.FindAllByUser(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

// notifyLateArrival mengirim notifikasi ke team lead user. Best-effort:
// kegagalan lookup maupun dispatch hanya di-log.
func (s *service) notifyLateArrival(ctx context.Context, userID, status, locationName string, at time.Time) {
	if s.leads == nil {
		return
	}
	leadID, err := s.leads.TeamLeadFor(ctx, userID)
	if err != nil || leadID == "" {
		if err != nil {
			s.log(ctx).Warn("late arrival lead lookup failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		return
	}

	if err := s.notifier.Dispatch(ctx, leadID, events.EventLateCheckIn,
		"Late check-in",
		fmt.Sprintf("A team member checked in %s at %s.", status, at.Format("15:04")),
		map[string]any{
			"user_id":  userID,
			"status":   status,
			"location": locationName,
		},
	); err != nil {
		s.log(ctx).Warn("late arrival notification dispatch failed", zap.Error(err))
	}
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		UserID:         a.UserID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		CheckInTime:    a.CheckInTime.Format(time.RFC3339),
		LocationName:   a.LocationName,
		Status:         a.Status,
		WorkDone:       a.WorkDone,
		ProjectName:    a.ProjectName,
		Meetings:       a.Meetings,
		TodoUpdates:    a.TodoUpdates,
		Notes:          a.Notes,
		Breaks:         make([]BreakResponse, len(a.Breaks)),
	}
	if a.CheckOutTime != nil {
		v := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	for i, b := range a.Breaks {
		br := BreakResponse{
			ID:          b.ID.String(),
			Type:        b.Type,
			DurationMin: b.DurationMin,
			StartTime:   b.StartTime.Format(time.RFC3339),
		}
		if b.EndTime != nil {
			v := b.EndTime.Format(time.RFC3339)
			br.EndTime = &v
		}
		resp.Breaks[i] = br
	}
	return resp
}
