// Package apperr provides a templated error type shared across packages
package apperr

import (
	"errors"
	"fmt"
)

// Error is an application error. Package-level values act as templates:
// Fmt and Wrap derive new errors that still match the template under
// errors.Is.
type Error struct {
	Message string
	Cause   error
	tmpl    *Error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is e or the template e was derived from.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t == e || t == e.root()
}

// Fmt returns a copy of e whose message is formatted with args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Cause:   e.Cause,
		tmpl:    e.root(),
	}
}

// Wrap returns a copy of e that carries err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Cause:   err,
		tmpl:    e.root(),
	}
}

func (e *Error) root() *Error {
	if e.tmpl != nil {
		return e.tmpl
	}

	return e
}
