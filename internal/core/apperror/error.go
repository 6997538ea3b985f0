// Package apperror provides the structured error taxonomy shared by repositories and the warehouse.
// Every invariant violation is reported as an *AppError so callers can branch on Code.
package apperror

import (
	"errors"
	"fmt"
)

// Error codes
const (
	// Infrastructure
	CodeInternal = "INTERNAL_ERROR"

	// Validation
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidQuantity = "INVALID_QUANTITY"
	CodeInvalidFilter   = "INVALID_FILTER"

	// Lookup
	CodeNotFound = "NOT_FOUND"

	// Conflict
	CodeDuplicate = "DUPLICATE_ENTRY"
)

// Sentinels for errors.Is. Matching is done by Code, so any AppError with the
// same code in the chain satisfies errors.Is(err, ErrNotFound).
var (
	ErrDuplicate       = &AppError{Code: CodeDuplicate}
	ErrNotFound        = &AppError{Code: CodeNotFound}
	ErrInvalidQuantity = &AppError{Code: CodeInvalidQuantity}
	ErrValidation      = &AppError{Code: CodeValidation}
)

// AppError is the standard error type for the inventory module.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (entity, id, quantities)
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying error
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewValidation creates a validation error.
func NewValidation(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewNotFound creates the error returned when an identifier is absent from a repository.
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", entity, id),
		Details: map[string]any{"entity": entity, "id": id},
	}
}

// NewDuplicate creates the error returned when an identifier is already taken.
func NewDuplicate(entity string, id any) *AppError {
	return &AppError{
		Code:    CodeDuplicate,
		Message: fmt.Sprintf("%s with ID %v already exists", entity, id),
		Details: map[string]any{"entity": entity, "id": id},
	}
}

// NewInvalidQuantity creates the error returned for a negative quantity.
func NewInvalidQuantity(quantity int) *AppError {
	return &AppError{
		Code:    CodeInvalidQuantity,
		Message: "quantity cannot be negative",
		Details: map[string]any{"quantity": quantity},
	}
}

// NewInvalidFilter wraps a filter compilation or evaluation failure.
func NewInvalidFilter(expr string, err error) *AppError {
	return &AppError{
		Code:    CodeInvalidFilter,
		Message: "invalid filter expression",
		Details: map[string]any{"expression": expr},
		Err:     err,
	}
}

// NewInternal creates an internal error
func NewInternal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in the chain, or CodeInternal.
func CodeOf(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate checks if error is CodeDuplicate
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsInvalidQuantity checks if error is CodeInvalidQuantity
func IsInvalidQuantity(err error) bool {
	return errors.Is(err, ErrInvalidQuantity)
}

// IsValidation checks if error is CodeValidation
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
