// internal/apperr/apperr.go
//
// Domain error taxonomy shared by the content and contact packages.
//
// Context
// -------
// Three failure classes cover everything the core logic can report:
//
//   - ValidationError – one or more input fields missing, malformed, or
//     outside a fixed vocabulary.  Recoverable; the caller re-prompts.
//   - DuplicateError  – a uniqueness constraint (email, slug) would be
//     violated.  Surfaced by the persistence layer, propagated unchanged.
//   - NotFoundError   – lookup by slug or id matched nothing.
//
// Handlers map these to 422, 409, and 404 via the errors.As helpers below.
// Everything else is a 500.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError names one failed field and a user-facing reason.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates every field failure from one validation pass,
// so the caller can highlight all problems at once instead of one per
// round-trip.  A ValidationError never accompanies a partial record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// Add appends a field failure.  Convenient for validators that collect
// errors across many fields before returning.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// Empty reports whether any failure has been recorded.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// DuplicateError reports a uniqueness-constraint violation on Field.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for %s", e.Field)
}

// NotFoundError reports a failed lookup by Key (slug, id, email).
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found", e.Key)
}

// IsValidation returns the *ValidationError inside err, or nil.
func IsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// IsDuplicate returns the *DuplicateError inside err, or nil.
func IsDuplicate(err error) *DuplicateError {
	var de *DuplicateError
	if errors.As(err, &de) {
		return de
	}
	return nil
}

// IsNotFound returns the *NotFoundError inside err, or nil.
func IsNotFound(err error) *NotFoundError {
	var ne *NotFoundError
	if errors.As(err, &ne) {
		return ne
	}
	return nil
}
