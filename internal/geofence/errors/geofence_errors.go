package geofenceerrors

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
	ErrInvalidRadius = apperror.New(
		apperror.CodeInvalidInput,
		"radius_meters must be between 1 and 1000",
		http.StatusBadRequest,
	)
	ErrLocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"office location not found",
		http.StatusNotFound,
	)
	ErrLocationStillActive = apperror.New(
		apperror.CodeInvalidState,
		"office location must be deactivated before removal",
		http.StatusBadRequest,
	)
)
