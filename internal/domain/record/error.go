package record

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("record conflicts with an existing one")
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError describes one field that failed its format constraint.
type FieldError struct {
	Field   string
	Message string
	Value   any
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError is returned before any store mutation when input is malformed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// FieldErrors accumulates per-field failures while a request is validated.
type FieldErrors []FieldError

func (fe *FieldErrors) Add(field, message string, value any) {
	*fe = append(*fe, FieldError{Field: field, Message: message, Value: value})
}

// Check records err against field when it is not nil.
func (fe *FieldErrors) Check(field string, value any, err error) {
	if err != nil {
		fe.Add(field, err.Error(), value)
	}
}

// Err returns nil when nothing was collected.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

// ConflictError reports a uniqueness violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "unique constraint violated"
	}
	return e.Field + " already in use"
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
