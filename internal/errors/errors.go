package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTaskNotFound is returned when a task is absent from the caller's scope.
	ErrTaskNotFound = errors.New("task not found")
	// ErrHistoryNotFound is returned when an AI history entry is absent from the caller's scope.
	ErrHistoryNotFound = errors.New("history entry not found")
	// ErrUserNotFound is returned when a user lookup matches nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrPermissionDenied is returned on a cross-user mutation attempt. The
	// row exists but belongs to someone else; deliberately not a not-found.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidChoice is returned when an enumerated field receives a value
	// outside its choice set.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrMultipleUsers is returned when an import lookup matches more than one user.
	ErrMultipleUsers = errors.New("multiple users match")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrHistoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "HISTORY_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrPermissionDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PERMISSION_DENIED")
	case errors.Is(err, ErrInvalidChoice):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CHOICE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
