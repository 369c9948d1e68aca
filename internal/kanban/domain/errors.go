package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure independently of where it was raised.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "NotFound"
	KindValidation       ErrorKind = "ValidationError"
	KindWipLimitExceeded ErrorKind = "WipLimitExceeded"
	KindConflict         ErrorKind = "Conflict"
	KindUnexpected       ErrorKind = "UnexpectedError"
)

// Error is the fault type returned by entities and usecases.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrWipLimitExceeded = &Error{Kind: KindWipLimitExceeded}
	ErrConflict         = &Error{Kind: KindConflict}
)

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewWipLimitError(format string, args ...any) *Error {
	return &Error{Kind: KindWipLimitExceeded, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NewUnexpectedError wraps a cause that has no better classification.
func NewUnexpectedError(message string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: message, Err: err}
}

// KindOf reports the kind of err. Errors that are not *Error are unexpected.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
