// Package errors provides custom error types for the finsight API.
// All service- and store-layer errors should use AppError so the boundary can
// return consistent responses without leaking internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Upload and import errors.
var (
	ErrMissingFile     = &AppError{Code: "MISSING_FILE", Message: "No file part in the request", StatusCode: http.StatusBadRequest}
	ErrInvalidFileType = &AppError{Code: "INVALID_FILE_TYPE", Message: "File type not allowed. Please upload a CSV file", StatusCode: http.StatusBadRequest}
	ErrEmptyFile       = &AppError{Code: "EMPTY_FILE", Message: "Uploaded CSV file is empty", StatusCode: http.StatusBadRequest}
	ErrMissingColumn   = &AppError{Code: "MISSING_COLUMN", Message: "A required column is missing from the uploaded file", StatusCode: http.StatusBadRequest}
)
