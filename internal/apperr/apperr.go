// Package apperr provides typed application errors and their HTTP status mapping
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	// KindInternal is any unexpected failure
	KindInternal Kind = iota
	// KindNotFound means a referenced record does not exist
	KindNotFound
	// KindUpstreamUnavailable means an external AI provider could not be used
	KindUpstreamUnavailable
	// KindInvalid means the caller sent unusable input
	KindInvalid
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindInvalid:
		return "invalid"
	default:
		return "internal"
	}
}

// Error is an error carrying a Kind
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

// Invalid creates an invalid input error
func Invalid(message string) *Error {
	return New(KindInvalid, message, nil)
}

// Upstream creates an upstream unavailable error
func Upstream(message string, err error) *Error {
	return New(KindUpstreamUnavailable, message, err)
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// HTTPStatus maps an error to an HTTP status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalid:
		return http.StatusBadRequest
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
