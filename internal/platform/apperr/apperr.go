// Package apperr defines the application-level error kinds shared between
// services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for HTTP mapping and logging.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnavailable
)

// Error is an application error with a user-facing message.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the user-facing message without wrapped details.
func (e *Error) Message() string { return e.msg }

// NewValidationError marks malformed or missing caller input.
func NewValidationError(msg string) *Error {
	return &Error{kind: KindValidation, msg: msg}
}

// NewNotFoundError marks a missing resource.
func NewNotFoundError(resource, id string) *Error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewUnavailableError marks an upstream collaborator failure.
func NewUnavailableError(msg string, err error) *Error {
	return &Error{kind: KindUnavailable, msg: msg, err: err}
}

// Wrap attaches a cause to a new error of the given kind.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// HTTPStatus maps an error to its response status code. Unclassified errors
// are internal.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the message safe to show callers. Unclassified errors
// collapse to a generic message.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.msg
	}
	return "internal server error"
}
