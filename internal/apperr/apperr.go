// Package apperr defines the error taxonomy shared by services and handlers.
// Every failure that reaches the HTTP boundary is an *Error whose Kind picks
// the status code and whose Key names a localised message.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	KindInternal    Kind = iota // storage or unexpected failure
	KindValidation              // malformed or missing input, storage untouched
	KindAuth                    // no or invalid session
	KindForbidden               // valid session, insufficient privilege or wrong owner
	KindNotFound                // id does not resolve
	KindConflict                // would violate a checked invariant or lost a race
	KindUnavailable             // create failed in storage
)

// Status maps k to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is an application failure. Err, when set, is the underlying cause
// and is only ever logged. Args fill placeholders in the Key's message.
type Error struct {
	Kind Kind
	Key  string
	Args []any
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Key + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Key
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for e.
func (e *Error) Status() int { return e.Kind.Status() }

// With returns a copy of e carrying message arguments.
func (e *Error) With(args ...any) *Error {
	c := *e
	c.Args = args
	return &c
}

func Validation(key string) *Error { return &Error{Kind: KindValidation, Key: key} }
func Auth(key string) *Error       { return &Error{Kind: KindAuth, Key: key} }
func Forbidden(key string) *Error  { return &Error{Kind: KindForbidden, Key: key} }
func NotFound(key string) *Error   { return &Error{Kind: KindNotFound, Key: key} }
func Conflict(key string) *Error   { return &Error{Kind: KindConflict, Key: key} }

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Key: "error.internal", Err: err}
}

// Unavailable wraps a storage failure while creating a resource.
func Unavailable(key string, err error) *Error {
	return &Error{Kind: KindUnavailable, Key: key, Err: err}
}

// From returns err as an *Error, wrapping anything else as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}
