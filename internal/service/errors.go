package service

import (
	"errors"
	"strings"

	"github.com/Skotchmaster/storefront/internal/transport"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// ValidationError carries every violated field of a request. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Fields []transport.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) add(field, message string) *ValidationError {
	if e == nil {
		e = &ValidationError{}
	}
	e.Fields = append(e.Fields, transport.FieldError{Field: field, Message: message})
	return e
}

func fieldError(field, message string) *ValidationError {
	var e *ValidationError
	return e.add(field, message)
}
