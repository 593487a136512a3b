package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrActivityNotFound is returned when a listing is not found.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidID is returned when an identifier is structurally malformed.
	ErrInvalidID = errors.New("invalid id format")
	// ErrDuplicateUser is returned when registering an email that already exists.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidActivityType is returned when a listing type is not recognized.
	ErrInvalidActivityType = errors.New("invalid activity type")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
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
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACTIVITY_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ID_FORMAT")
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidActivityType):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ACTIVITY_TYPE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
