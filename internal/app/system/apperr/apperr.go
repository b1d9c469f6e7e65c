// Package apperr defines the error kinds the service distinguishes at its
// boundaries. Handlers map kinds to HTTP status codes; anything without a
// kind is treated as internal and hidden from callers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for boundary handling.
type Kind int

const (
	KindUnknown    Kind = iota
	KindValidation      // bad input, rejected before any store write
	KindNotFound        // course/discipline/user does not exist
	KindUnauthorized    // missing or invalid token
	KindForbidden       // authenticated but role insufficient
	KindStore           // the document store call failed
)

// Error carries a kind, a caller-safe message, and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an error of the given kind.
func E(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// Ef builds an error of the given kind with a formatted message.
func Ef(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Validationf is shorthand for a validation error.
func Validationf(format string, args ...any) *Error {
	return Ef(KindValidation, format, args...)
}

// ErrNotFound is the sentinel stores return for missing documents.
var ErrNotFound = E(KindNotFound, "not found")

// KindOf extracts the kind from err, walking wrapped errors.
// errors.Is(err, ErrNotFound) also works for plain not-found checks.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a not-found error of any origin.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
