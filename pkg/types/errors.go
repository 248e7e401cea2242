package types

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorKindNotFound     ErrorKind = "NOT_FOUND"
	ErrorKindForbidden    ErrorKind = "FORBIDDEN"
	ErrorKindUnauthorized ErrorKind = "UNAUTHORIZED"
	ErrorKindInvalid      ErrorKind = "INVALID_INPUT"
	ErrorKindPersistence  ErrorKind = "PERSISTENCE_FAILURE"
	ErrorKindStorage      ErrorKind = "STORAGE_FAILURE"
)

// errorMessages maps each kind to its display text. Built once, read-only.
var errorMessages = map[ErrorKind]string{
	ErrorKindNotFound:     "requested record was not found",
	ErrorKindForbidden:    "operation is not permitted for this profile type",
	ErrorKindUnauthorized: "authentication required",
	ErrorKindInvalid:      "submission input is invalid",
	ErrorKindPersistence:  "persistence operation failed",
	ErrorKindStorage:      "object storage operation failed",
}

// Error is the typed failure surfaced by the core. Kind distinguishes the
// failure class for callers; Detail narrows it to the specific record or
// operation.
type Error struct {
	Kind   ErrorKind
	Detail string
	cause  error
}

func (e *Error) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = errorMessages[e.Kind]
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Message returns the display text for the error's kind.
func (e *Error) Message() string {
	return errorMessages[e.Kind]
}

func (e *Error) Unwrap() error {
	return e.cause
}

var (
	ErrFormNotFound      = &Error{Kind: ErrorKindNotFound, Detail: "form not found"}
	ErrUserNotFound      = &Error{Kind: ErrorKindNotFound, Detail: "user not found"}
	ErrEvidenceForbidden = &Error{Kind: ErrorKindForbidden, Detail: "profile type may not attach evidence"}
	ErrNegativeAmount    = &Error{Kind: ErrorKindInvalid, Detail: "amount must be non-negative"}
)

func PersistenceError(cause error) *Error {
	return &Error{Kind: ErrorKindPersistence, cause: cause}
}

func StorageError(cause error) *Error {
	return &Error{Kind: ErrorKindStorage, cause: cause}
}

// KindOf extracts the error kind from err's chain. Errors with no typed kind
// report ErrorKindPersistence, the catch-all for unclassified failures.
func KindOf(err error) ErrorKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return ErrorKindPersistence
}
