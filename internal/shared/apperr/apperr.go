// Package apperr defines the error kinds shared by every feature.
// Features declare sentinel errors with a Kind and a message key; the HTTP layer maps the
// Kind to a status code and the key to a localized message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so that callers can react without string matching.
type Kind int

const (
	// KindUnexpected covers anything not classified below (malformed responses, I/O faults).
	KindUnexpected Kind = iota
	// KindConflict is a uniqueness violation.
	KindConflict
	// KindNotFound means the referenced resource does not exist for the caller.
	KindNotFound
	// KindValidationRejected means the remote provider rejected the submitted data.
	KindValidationRejected
	// KindRemoteCallFailed means the remote provider could not be reached or answered unexpectedly.
	KindRemoteCallFailed
	// KindInvalidInput means the request itself is malformed.
	KindInvalidInput
	// KindUnauthorized means the caller could not be authenticated.
	KindUnauthorized
	// KindForbidden means the caller is authenticated but not allowed.
	KindForbidden
)

var kindNames = map[Kind]string{
	KindUnexpected:         "unexpected",
	KindConflict:           "conflict",
	KindNotFound:           "not_found",
	KindValidationRejected: "validation_rejected",
	KindRemoteCallFailed:   "remote_call_failed",
	KindInvalidInput:       "invalid_input",
	KindUnauthorized:       "unauthorized",
	KindForbidden:          "forbidden",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is an error tagged with a Kind and a translation key.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Err     error
}

// New creates a tagged error without a cause.
func New(kind Kind, key, message string) *Error {
	return &Error{Kind: kind, Key: key, Message: message}
}

// Wrap tags cause with kind. The message of cause is kept.
func Wrap(kind Kind, key string, cause error) *Error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: kind, Key: key, Message: msg, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != e.Err.Error() {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of the first *Error in err's chain.
// Untagged errors are KindUnexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// KeyOf returns the translation key of the first *Error in err's chain, or "".
func KeyOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Key
	}
	return ""
}

// Is reports whether err is tagged with kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
