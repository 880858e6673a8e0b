// Package apperrors defines the error kinds surfaced to callers of the
// catalog and participation services.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindValidation  Kind = "validation"
	KindRateLimited Kind = "rate_limited"
	KindInternal    Kind = "internal"
)

// Error is a classified error. Sentinels built with the constructors below
// compare by identity, so errors.Is keeps working after wrapping.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a not-found error.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Conflict builds a conflict error.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Validation builds a validation error.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// RateLimited builds an error for a caller over its request budget.
func RateLimited(msg string) *Error { return &Error{Kind: KindRateLimited, Message: msg} }

// Wrap attaches detail to a classified sentinel while keeping it matchable
// with errors.Is.
func Wrap(sentinel *Error, format string, args ...any) *Error {
	return &Error{
		Kind:    sentinel.Kind,
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

// KindOf returns the kind of the first classified error in the chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
