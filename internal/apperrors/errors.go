package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPeriodClosed indicates a mutation was attempted against a CLOSED accounting period.
var ErrPeriodClosed = errors.New("accounting period is closed")

// ErrConflict indicates the resource is not in a state that permits the requested
// transition (already posted, not posted, already closed, ...).
var ErrConflict = errors.New("conflicting resource state")

// ErrRateUnavailable indicates no exchange rate exists for a required currency/date.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrConcurrency indicates a transaction conflict; the operation is safe to retry.
var ErrConcurrency = errors.New("concurrent modification conflict")

// AppError carries a status code alongside a wrapped cause. Repositories use it for
// infrastructure failures that have no sentinel of their own.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates an AppError that satisfies errors.Is(err, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
