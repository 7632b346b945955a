package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is a client-side input error: the action is blocked
// locally and no network call is made.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ErrUnauthorized signals a missing or expired bearer credential.
// It terminates the session: callers redirect to re-authentication and never retry.
var ErrUnauthorized = errors.New("authentication required")

// RejectedError is a validation failure reported by the backend;
// the server message is surfaced verbatim for the user to correct their input.
type RejectedError struct {
	Message string
}

func NewRejectedError(msg string) error {
	return &RejectedError{Message: msg}
}

func (err RejectedError) Error() string {
	return err.Message
}

// UnreachableError is a network/transport failure talking to the backend.
// Recovery is manual re-submission only.
type UnreachableError struct {
	Err error
}

func NewUnreachableError(err error) error {
	return &UnreachableError{Err: err}
}

func (err UnreachableError) Error() string {
	return fmt.Sprintf("service unreachable: %v", err.Err)
}

func (err UnreachableError) Unwrap() error { return err.Err }

func IsUnauthorized(err error) bool {
	return errors.Cause(err) == ErrUnauthorized
}

func IsRejected(err error) bool {
	_, ok := errors.Cause(err).(*RejectedError)
	return ok
}

func IsUnreachable(err error) bool {
	_, ok := errors.Cause(err).(*UnreachableError)
	return ok
}
