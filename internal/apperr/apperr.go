// Package apperr holds the error kinds every service classifies its
// failures into. Sentinels built here keep their own identity and also match
// their kind with errors.Is, so the transport layer can pick a status code.
package apperr

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

// Is reports a match against the kind. Matching the sentinel itself is
// handled by pointer identity.
func (e *kindError) Is(target error) bool { return target == e.kind }

// NotFound returns a new error that matches ErrNotFound.
func NotFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

func Unauthorized(msg string) error {
	return &kindError{kind: ErrUnauthorized, msg: msg}
}

func InvalidState(msg string) error {
	return &kindError{kind: ErrInvalidState, msg: msg}
}

func Validation(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// HTTPStatus maps an error to the status code the API answers with.
// Unclassified errors are internal failures.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether err belongs to one of the known kinds,
// meaning its message is safe to return to the caller.
func IsClientError(err error) bool {
	return HTTPStatus(err) < http.StatusInternalServerError
}
