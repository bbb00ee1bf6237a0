// Package domainerrors defines coded, user-visible errors for the request
// gateway. Services return these so transport layers can map a stable code
// to an HTTP status and message without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of user-visible failure. Codes are part of the API
// contract; renaming one is a breaking change.
type Code string

const (
	// Request pipeline failures, in stage order.
	CodeConsentMissing    Code = "consent_missing"
	CodeFieldsMissing     Code = "fields_missing"
	CodeOCRUnavailable    Code = "ocr_unavailable"
	CodeNameInsufficient  Code = "name_insufficient"
	CodeIdentityMismatch  Code = "identity_mismatch"
	CodeRosterUnavailable Code = "roster_unavailable"
	CodeNameNotFound      Code = "name_not_found"
	CodeSlotsExhausted    Code = "slots_exhausted"
	CodeRenderFailure     Code = "render_failure"

	// Generic transport-level failures.
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal_error"
)

// Error carries a code plus a human-readable message and an optional cause.
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

// New constructs a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error. The cause is
// preserved for errors.Is/As but never surfaced to API clients.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// CodeOf extracts the code from err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Infrastructure reports whether the code denotes an infrastructure failure
// (an external collaborator misbehaving) rather than a domain outcome. The
// split drives logging: infrastructure failures alert, domain failures tally.
func Infrastructure(code Code) bool {
	switch code {
	case CodeRosterUnavailable, CodeOCRUnavailable, CodeRenderFailure, CodeInternal:
		return true
	}
	return false
}
