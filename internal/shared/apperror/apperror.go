package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the outcomes the HTTP layer knows
// how to render. Every error that crosses a service boundary carries one.
type Kind int

const (
	KindUnexpected Kind = iota // anything not classified below
	KindValidation             // request payload failed validation
	KindUnauthorized           // missing or invalid credentials
	KindForbidden              // authenticated but not allowed
	KindNotFound               // target or referenced record does not exist
	KindConflict               // uniqueness or referential conflict
)

// HTTPStatus maps a kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// Error is the tagged error type used across domains: a stable code for
// clients, a human-readable message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Newf(kind Kind, code, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Unexpected wraps an unclassified error. The original error is preserved
// for logging; the message shown to clients stays generic.
func Unexpected(err error) *Error {
	return &Error{
		Kind:    KindUnexpected,
		Code:    "SYS_001",
		Message: "internal server error",
		Err:     err,
	}
}

// From extracts the *Error from err, wrapping as Unexpected when err was
// never classified. Never returns nil for a non-nil err.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unexpected(err)
}

// KindOf reports the kind err maps to. Unclassified errors are Unexpected.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
