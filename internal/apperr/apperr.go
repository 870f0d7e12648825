// Package apperr defines the error taxonomy shared by every module.
//
// Business-rule failures are returned as *Error values that unwrap to one of the
// sentinel kinds below, so callers branch with errors.Is. Anything that does not
// unwrap to a kind is an unexpected (internal) failure.
package apperr

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalid           = errors.New("invalid")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnavailable       = errors.New("unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
)

// Error is a business-rule failure carrying a human readable message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

// Kind returns the sentinel this error belongs to.
func (e *Error) Kind() error { return e.kind }

// New builds an error of the given kind. It is used by modules that declare
// their own sentinels, e.g. session.ErrAlreadyClosed.
func New(kind error, format string, a ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...)}
}

func NotFound(format string, a ...any) error { return New(ErrNotFound, format, a...) }
func Invalid(format string, a ...any) error  { return New(ErrInvalid, format, a...) }
func Conflict(format string, a ...any) error { return New(ErrConflict, format, a...) }

func Unauthorized(format string, a ...any) error {
	return New(ErrUnauthorized, format, a...)
}

func InvalidTransition(format string, a ...any) error {
	return New(ErrInvalidTransition, format, a...)
}

// KindOf classifies err. Context expiry is reported as ErrUnavailable; nil is
// returned for unexpected errors.
func KindOf(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrUnavailable
	}
	for _, k := range []error{ErrNotFound, ErrInvalid, ErrConflict, ErrInvalidTransition, ErrUnavailable, ErrUnauthorized} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// ParseID parses a uuid supplied by a caller; malformed input is ErrInvalid.
func ParseID(field, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, Invalid("%s is required", field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, Invalid("invalid %s: %s", field, value)
	}
	return id, nil
}

// ParseOptionalID is ParseID for fields that may be empty.
func ParseOptionalID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := ParseID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
