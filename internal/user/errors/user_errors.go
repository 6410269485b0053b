package usererrors

import (
	"net/http"

	"go-attend/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of ADMIN, TEAM_LEAD, EMPLOYEE",
		http.StatusBadRequest,
	)
	ErrInvalidTeamID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid team ID",
		http.StatusBadRequest,
	)
	ErrUserInactive = apperror.New(
		apperror.CodeInvalidState,
		"User account is deactivated",
		http.StatusBadRequest,
	)
)
