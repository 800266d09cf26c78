// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError reports missing or malformed input. Fields holds the
// offending request field names in the order they were found.
type ValidationError struct {
	Fields  []string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	var missing, invalid []string
	for _, f := range e.Fields {
		if e.Details[f] == "required" {
			missing = append(missing, f)
		} else {
			invalid = append(invalid, f)
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

// Invalid builds a ValidationError for a single malformed field.
func Invalid(field, reason string) *ValidationError {
	e := &ValidationError{Details: map[string]string{}}
	e.add(field, reason)
	return e
}

func (e *ValidationError) add(field, reason string) {
	if _, seen := e.Details[field]; !seen {
		e.Fields = append(e.Fields, field)
	}
	e.Details[field] = reason
}

// NotFound wraps ErrNotFound with the entity name and identifier.
func NotFound(entity string, id any) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}

// PersistenceError marks a store failure. Its cause is for server logs only.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err unless it is nil or already classified.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var pe *PersistenceError
	if errors.As(err, &ve) || errors.As(err, &pe) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
