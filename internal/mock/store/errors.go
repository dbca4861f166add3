package store

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrMalformedBody = errors.New("invalid JSON")
	ErrNotFound      = errors.New("not found")
	ErrInvalidState  = errors.New("invalid state")
)

// ValidationError reports a missing or unacceptable field. Message is what
// the caller sees.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Invalid field: %s", e.Field)
}

func (e ValidationError) Is(target error) bool { return target == ErrValidation }

func MissingField(field string) ValidationError {
	return ValidationError{Field: field, Message: "Missing field: " + field}
}

func InvalidField(field string) ValidationError {
	return ValidationError{Field: field, Message: "Invalid field: " + field}
}

type MalformedBodyError struct {
	Cause error
}

func (e MalformedBodyError) Error() string { return "Invalid JSON" }

func (e MalformedBodyError) Unwrap() error { return e.Cause }

func (e MalformedBodyError) Is(target error) bool { return target == ErrMalformedBody }

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s with id %s not found", e.Kind, e.ID)
}

func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidStateError is returned when a workflow transition is attempted from a
// state that does not allow it.
type InvalidStateError struct {
	Kind    string
	ID      string
	State   string
	Message string
}

func (e InvalidStateError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s is %s", e.Kind, e.ID, e.State)
}

func (e InvalidStateError) Is(target error) bool { return target == ErrInvalidState }
