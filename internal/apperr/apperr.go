// Package apperr defines the error type shared by every Slumber package.
// Errors are declared once as package-level templates and specialised with
// Fmt or Wrap at the call site, so errors.Is keeps matching the template.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an error for the user interface.
type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeNetworkTimeout Code = "NETWORK_TIMEOUT"
	CodeNetwork        Code = "NETWORK_ERROR"
	CodeNotFound       Code = "NOT_FOUND"
	CodePermission     Code = "PERMISSION_ERROR"
	CodePlayback       Code = "PLAYBACK_ERROR"
	CodeInvalidSource  Code = "INVALID_SOURCE"
	CodeStorage        Code = "STORAGE_ERROR"
	CodeSync           Code = "SYNC_ERROR"
)

// Error is a user-facing error.
type Error struct {
	Cause    error
	base     *Error
	Message  string
	Code     Code
	CanRetry bool
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is e or the template e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || (e.base != nil && e.base == t)
}

func (e *Error) clone() *Error {
	base := e
	if e.base != nil {
		base = e.base
	}

	c := *e
	c.base = base

	return &c
}

// Fmt returns a copy of the error with its message formatted with args.
func (e *Error) Fmt(args ...any) *Error {
	c := e.clone()
	c.Message = fmt.Sprintf(e.Message, args...)

	return c
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.Cause = err

	return c
}

// Retryable reports whether err (or anything it wraps) is an *Error that
// may succeed when attempted again.
func Retryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.CanRetry
	}

	return false
}

// CodeOf returns the code of the first *Error in err's chain, or an empty
// code if there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ""
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)

	return e, ok
}
