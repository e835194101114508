// Package apierror defines the error taxonomy shared by every catalog
// operation. Services only ever return *Error values; the HTTP layer maps
// the Kind to a status code and the Message into the response envelope.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed operation.
type Kind int

const (
	KindUnexpected Kind = iota
	KindBadRequest      // write attempted but affected zero rows, or invalid input
	KindNotFound        // referenced entity absent
	KindConflict        // uniqueness or linkage violation
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// Error is the canonical failure value of the service layer.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, only set for KindUnexpected
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Unexpected wraps any error that escaped the domain checks. An error that
// already is an *Error is returned unchanged.
func Unexpected(err error) *Error {
	if e, ok := As(err); ok {
		return e
	}
	return &Error{Kind: KindUnexpected, Message: err.Error(), Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}
