package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types
var (
	ErrValidation = errors.New("validation error")
	ErrProcessing = errors.New("processing error")
)

// AppError represents an application error with context.
// Errors come in two client-visible kinds: validation errors caused by bad
// input (4xx) and processing errors caused by internal or dependency
// failures (5xx).
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	HTTPStatus int               `json:"-"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// BadRequest creates a validation error without field details
func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Message:    message,
		Code:       "VALIDATION_ERROR",
		HTTPStatus: http.StatusBadRequest,
	}
}

// Validation creates a validation error with field details
func Validation(message string, details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Message:    message,
		Code:       "VALIDATION_ERROR",
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Processing creates a processing error from an internal failure
func Processing(err error, message string) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %v", ErrProcessing, err),
		Message:    message,
		Code:       "PROCESSING_ERROR",
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Internal creates a processing error with a generic message
func Internal(err error) *AppError {
	return Processing(err, "internal server error")
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *AppError {
	if appErr, ok := err.(*AppError); ok {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "PROCESSING_ERROR",
		HTTPStatus: http.StatusInternalServerError,
	}
}

// IsValidation reports whether err is a client input error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
