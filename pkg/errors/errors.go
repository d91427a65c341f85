// Package errors defines the typed error taxonomy the HTTP layer maps onto
// status codes. Services and adapters return an *AppError; handlers switch on
// its Type rather than matching message strings.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies an AppError for status-code mapping.
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"    // row or resource missing
	ErrorTypeValidation   ErrorType = "VALIDATION"   // request blocked before any write
	ErrorTypeConflict     ErrorType = "CONFLICT"     // duplicate or contradictory data
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED" // caller lacks an active subscription
	ErrorTypeInternal     ErrorType = "INTERNAL"     // our bug, or the database misbehaving
	ErrorTypeExternal     ErrorType = "EXTERNAL"     // Stripe or the email API failed
)

// AppError carries a classified error through the service layers. Message is
// safe to show in the dashboard's error banner; Err holds the underlying
// cause for logs.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HasType reports whether err is (or wraps) an AppError of the given type.
func HasType(err error, errorType ErrorType) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Type == errorType
}

// NewNotFoundError marks a lookup that matched nothing.
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewValidationError rejects a request before it touches storage.
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewConflictError marks a write that contradicts existing data.
func NewConflictError(message string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: message}
}

// NewUnauthorizedError marks a request the caller may not make.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message}
}

// NewInternalError wraps a failure on our side of the wire.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// NewExternalError wraps a failure from a hosted dependency.
func NewExternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeExternal, Message: message, Err: err}
}
