// Package apperr defines the application error taxonomy shared by services
// and handlers. Services return *Error values; the HTTP layer maps Kind to a
// status code and renders the message/detail without leaking internals.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnauthenticated Kind = iota
	KindForbidden
	KindValidation
	KindNotFound
	KindConflict
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string                 // short human-readable summary
	Detail  string                 // longer detail, safe for callers
	Fields  map[string]interface{} // machine-readable extras (e.g. existing vote type)
	cause   error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithField attaches a machine-readable field and returns the error.
func (e *Error) WithField(key string, value interface{}) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

func newError(kind Kind, message, detail string) *Error {
	return &Error{Kind: kind, Message: message, Detail: detail}
}

func Unauthenticated(detail string) *Error {
	return newError(KindUnauthenticated, "authentication required", detail)
}

func Forbidden(detail string) *Error {
	return newError(KindForbidden, "permission denied", detail)
}

func Validation(detail string) *Error {
	return newError(KindValidation, "invalid request", detail)
}

func Validationf(format string, args ...interface{}) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

func NotFound(detail string) *Error {
	return newError(KindNotFound, "not found", detail)
}

func Conflict(detail string) *Error {
	return newError(KindConflict, "conflict", detail)
}

// Internal wraps an unexpected failure. The underlying error is kept for
// logging but never rendered to the caller.
func Internal(detail string, cause error) *Error {
	e := newError(KindInternal, "internal error", detail)
	e.cause = cause
	return e
}

// From normalizes any error into an *Error, wrapping unknown errors as
// internal failures.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("unexpected failure", err)
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
