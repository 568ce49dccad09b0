// Package apperr defines the error kinds the service layer reports to
// transport. Handlers match them with errors.As and pick the HTTP status;
// the core never formats user-facing text.
package apperr

import "fmt"

// NotFoundError reports that a referenced parent entity does not exist.
// Plain "nothing matched this read" is not an error; read paths return a
// nil entity instead.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Ref)
}

func NotFound(entity, ref string) *NotFoundError {
	return &NotFoundError{Entity: entity, Ref: ref}
}

// ValidationError reports malformed input: empty required text, a value
// outside a closed enum, or a drawing payload on a non-annotation entry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports a uniqueness collision on create (share-link token,
// project number, order index within a review).
type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

func Conflict(entity, reason string) *ConflictError {
	return &ConflictError{Entity: entity, Reason: reason}
}
