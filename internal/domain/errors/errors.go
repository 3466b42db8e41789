package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrAccountInactive    = errors.New("account inactive")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTooLarge           = errors.New("payload too large")
	ErrFeatureDisabled    = errors.New("feature disabled")
)

// Error codes returned in the response body
const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeInvalidInput      = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeTooLarge          = "PAYLOAD_TOO_LARGE"
	CodeUnavailable       = "SERVICE_UNAVAILABLE"
	CodeInternalError     = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

// Validation reports a missing or malformed field.
func Validation(format string, args ...any) *AppError {
	msg := fmt.Sprintf(format, args...)
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, msg, fmt.Errorf("%w: %s", ErrInvalidInput, msg))
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

// InvalidTransition is returned when a status change is not allowed from the current state.
func InvalidTransition(from, to string) *AppError {
	msg := fmt.Sprintf("cannot change status from %s to %s", from, to)
	return NewAppError(http.StatusConflict, CodeInvalidTransition, msg, ErrInvalidTransition)
}

func TooLarge(message string) *AppError {
	return NewAppError(http.StatusRequestEntityTooLarge, CodeTooLarge, message, ErrTooLarge)
}

func Unavailable(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, CodeUnavailable, message, ErrFeatureDisabled)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, nil)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
		Err:     err,
	}
}
