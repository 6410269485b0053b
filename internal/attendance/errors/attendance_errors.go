package attendanceerrors

import (
	"net/http"

	"go-attend/internal/shared/apperror"
)

var (
	ErrInvalidCoordinate = apperror.New(
		apperror.CodeInvalidInput,
		"latitude must be within [-90,90] and longitude within [-180,180]",
		http.StatusBadRequest,
	)
	ErrInvalidBreakType = apperror.New(
		apperror.CodeInvalidInput,
		"break type must be one of WALKING, TEA, LUNCH",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"already checked in for today",
		http.StatusConflict,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"already checked out for today",
		http.StatusConflict,
	)
	ErrBreakAlreadyActive = apperror.New(
		apperror.CodeConflict,
		"a break is already active, end it before starting another",
		http.StatusConflict,
	)
	ErrLunchAlreadyTaken = apperror.New(
		apperror.CodeConflict,
		"lunch break already taken today",
		http.StatusConflict,
	)
	ErrBreakStillActive = apperror.New(
		apperror.CodeConflict,
		"an open break must be ended before checking out",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodePreconditionFailed,
		"not checked in for today",
		http.StatusBadRequest,
	)
	ErrNoActiveBreak = apperror.New(
		apperror.CodePreconditionFailed,
		"no active break to end",
		http.StatusBadRequest,
	)
	ErrNoLocationsConfigured = apperror.New(
		apperror.CodeConfigMissing,
		"no active office locations configured, contact an administrator",
		http.StatusBadRequest,
	)
	ErrOutsideGeofence = apperror.New(
		apperror.CodeOutsideGeofence,
		"current position is outside all office locations",
		http.StatusBadRequest,
	)
	ErrNoAttendanceToday = apperror.New(
		apperror.CodeNotFound,
		"no attendance record for today",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
)
