// Package domainerrors provides coded errors for the service layer. Stores and
// other infrastructure return sentinel errors; services translate them into a
// coded error here so transport layers can map codes to HTTP statuses without
// inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies the class of failure. The string value doubles as the wire
// error code in HTTP responses.
type Code string

const (
	// CodeBadRequest marks malformed request envelopes (unparseable body,
	// wrong content type).
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks well-formed requests carrying invalid domain
	// values (negative amount, unknown enum, bad UUID).
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks references to records that do not exist.
	CodeNotFound Code = "not_found"
	// CodeUnauthorized marks missing or unverifiable credentials.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden marks authenticated principals acting outside their role.
	CodeForbidden Code = "forbidden"
	// CodeConflict marks uniqueness or concurrent-update violations.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation marks an attempt to put an aggregate into an
	// illegal state (e.g. a backwards application-status transition).
	CodeInvariantViolation Code = "invariant_violation"
	// CodeSignatureMismatch marks a failed payment-authenticity check. This
	// path must fail closed: no ledger record may exist for it.
	CodeSignatureMismatch Code = "signature_mismatch"
	// CodeUnavailable marks an unreachable upstream collaborator (payment
	// gateway, AI engine).
	CodeUnavailable Code = "upstream_unavailable"
	// CodeInternal marks store or unexpected failures. Detail is never
	// exposed to clients.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. Message is safe to show to API clients for
// every code except CodeInternal.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause. The cause stays
// reachable via errors.Is/errors.As for sentinel checks.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is is shorthand for HasCode, matching how handlers read at call sites.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf returns the outermost code carried by err, or CodeInternal when err
// carries none. Use at the transport boundary only.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost safe message, or an empty string when err is
// not a coded error.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
