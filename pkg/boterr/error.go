// Package boterr defines the error taxonomy shared by the interaction router
// and the workflow handlers.
package boterr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide whether to report it to a
// user, log it, or drop it.
type Kind string

const (
	KindUnknownCommand         Kind = "unknown_command"
	KindUnrecognizedComponent  Kind = "unrecognized_component"
	KindUnauthorized           Kind = "unauthorized"
	KindConditionFailed        Kind = "condition_failed"
	KindFetchFailed            Kind = "fetch_failed"
	KindRelayFailed            Kind = "relay_failed"
	KindPurgeFailed            Kind = "purge_failed"
	KindDuplicateCommand       Kind = "duplicate_command"
)

// Error is a classified error, optionally wrapping a cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error without a cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether any error in err's chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	var be *Error
	for errors.As(err, &be) {
		if be.Kind == kind {
			return true
		}
		err = be.Err
	}
	return false
}
