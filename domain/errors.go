package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by a service matches exactly one of
// them through errors.Is; the HTTP layer maps the category to a status code.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("authentication required")
)

// Validation kinds.
var (
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrOutOfRange     = errors.New("value out of range")
	ErrRequired       = errors.New("value required")
	ErrInvalidFormat  = errors.New("invalid format")
	ErrSelfReference  = errors.New("self reference")
)

type ValidationError struct {
	Field   string
	Kind    error
	Message string
}

func NewValidationError(field string, kind error, message string) *ValidationError {
	return &ValidationError{Field: field, Kind: kind, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
