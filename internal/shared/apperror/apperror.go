// Package apperror defines the error kinds shared by every feature.
// Feature packages build their own sentinel errors on top of these kinds, and the
// HTTP layer only inspects the kind to pick a status code.
package apperror

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against these to classify an error.
var (
	// ErrValidation marks malformed or missing client input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks missing, invalid or expired credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict marks a violated uniqueness constraint.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a resource that does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrResourceExhausted marks an infrastructure resource (e.g. a pool connection)
	// that could not be obtained in time.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// Error is an error with a message that is safe to show to clients.
type Error struct {
	kind error
	msg  string
}

// Error returns the public message.
func (e *Error) Error() string {
	return e.msg
}

// Unwrap returns the kind so that errors.Is(err, ErrValidation) and friends work.
func (e *Error) Unwrap() error {
	return e.kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Validation returns a validation error with the given public message.
func Validation(format string, args ...any) *Error {
	return newError(ErrValidation, format, args...)
}

// Unauthorized returns an authentication error with the given public message.
func Unauthorized(format string, args ...any) *Error {
	return newError(ErrUnauthorized, format, args...)
}

// Conflict returns a conflict error with the given public message.
func Conflict(format string, args ...any) *Error {
	return newError(ErrConflict, format, args...)
}

// NotFound returns a not-found error with the given public message.
func NotFound(format string, args ...any) *Error {
	return newError(ErrNotFound, format, args...)
}

// PublicMessage returns the client-facing message carried by err, if any.
func PublicMessage(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.msg, true
	}
	return "", false
}
