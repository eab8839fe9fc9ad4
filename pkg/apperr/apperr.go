package apperr

import (
	"errors"
	"net/http"
)

// Kind is the closed set of failure categories the API can surface. Handlers
// map a Kind to an HTTP status instead of matching on error strings.
type Kind int

const (
	KindUnauthenticated Kind = iota
	KindForbidden
	KindValidation
	KindNotFound
	KindConflict
	KindInternal
)

// FieldError describes a single invalid input field for validation failures.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a tagged application error. All guard and service failures flow
// through this type so the route boundary can dispatch exhaustively on Kind.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error // wrapped cause, never surfaced to clients
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "application error"
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus returns the status code a handler should respond with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Message: msg} }

func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func Validation(msg string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// From extracts an *Error from err, wrapping unknown errors as internal so
// unexpected failures never leak detail to clients.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
