// Package apperr defines the failure kinds surfaced by the booking API.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// Error carries a kind and a message safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error { return newf(KindValidation, format, args...) }

func Unauthenticatedf(format string, args ...any) *Error {
	return newf(KindUnauthenticated, format, args...)
}

func Forbiddenf(format string, args ...any) *Error { return newf(KindForbidden, format, args...) }

func NotFoundf(format string, args ...any) *Error { return newf(KindNotFound, format, args...) }

func Conflictf(format string, args ...any) *Error { return newf(KindConflict, format, args...) }

// Unexpected wraps a store or infrastructure failure; op names the failing step.
func Unexpected(op string, err error) *Error {
	return &Error{Kind: KindUnexpected, Err: fmt.Errorf("%s: %w", op, err)}
}

// KindOf returns the kind of the first *Error in err's chain,
// or KindUnexpected when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
