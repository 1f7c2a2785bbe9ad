package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals that the content is already stored.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput signals malformed or missing request data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidFilter signals that one or more filter fields failed coercion.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrConflictingFilters signals that a natural-language query produced an
	// empty filter set under wording that suggests a conflicting request.
	ErrConflictingFilters = errors.New("conflicting filters")
	// ErrUpstreamEmpty signals that the translation service returned no usable content.
	ErrUpstreamEmpty = errors.New("translator returned no content")
	// ErrUpstreamUnparseable signals that the translation service returned text
	// that is not valid JSON.
	ErrUpstreamUnparseable = errors.New("translator returned unparseable content")
)

// ConflictError wraps ErrAlreadyExists with the content address of the record
// that already holds the value.
type ConflictError struct {
	ExistingID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: existing id %s", ErrAlreadyExists.Error(), e.ExistingID)
}

func (e *ConflictError) Unwrap() error { return ErrAlreadyExists }

// NewConflict creates a conflict error carrying the existing record id.
func NewConflict(existingID string) error {
	return &ConflictError{ExistingID: existingID}
}

// FieldError describes a single filter field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

// FilterValidationError wraps ErrInvalidFilter with the full list of
// per-field failures. Compilation is all-or-nothing: every offending field
// is validated independently and reported together.
type FilterValidationError struct {
	Fields []FieldError
}

func (e *FilterValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return ErrInvalidFilter.Error() + ": " + strings.Join(parts, "; ")
}

func (e *FilterValidationError) Unwrap() error { return ErrInvalidFilter }
