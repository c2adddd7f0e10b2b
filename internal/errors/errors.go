package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrAddressNotFound is returned when an address id does not resolve.
	ErrAddressNotFound = errors.New("address not found")
	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrAddressAlreadyRegistered is returned when the user already owns an address.
	ErrAddressAlreadyRegistered = errors.New("this user already has an address registered")
	// ErrInvalidUserID is returned when an address references an unknown user.
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrNotOwner is returned when the caller does not own the target resource.
	ErrNotOwner = errors.New("you dont have owner permission")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors come back
// as an opaque 500 so store internals never leak to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrAddressNotFound):
		return NewHTTPError(http.StatusNotFound, ErrAddressNotFound.Error(), "ADDRESS_NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, ErrUserAlreadyExists.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrAddressAlreadyRegistered):
		return NewHTTPError(http.StatusConflict, ErrAddressAlreadyRegistered.Error(), "ADDRESS_ALREADY_REGISTERED")
	case errors.Is(err, ErrInvalidUserID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidUserID.Error(), "INVALID_USER_ID")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusUnauthorized, ErrNotOwner.Error(), "NOT_OWNER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
