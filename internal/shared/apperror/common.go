package apperror

import "net/http"

// Error generik lintas modul; modul dengan semantik lebih spesifik punya
// katalognya sendiri di internal/<modul>/errors.
var (
	ErrNotFound     = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrForbidden    = New(CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)
	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrInvalidInput = New(CodeInvalidInput, "The provided input is invalid", http.StatusBadRequest)
	ErrInternal     = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
)
