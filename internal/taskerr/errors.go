package taskerr

import (
	"errors"
	"fmt"
)

// Code classifies an error so transport layers can pick a status code
type Code string

const (
	CodeInvalid  Code = "INVALID"   // validation failure (400)
	CodeNotFound Code = "NOT_FOUND" // no task with that identifier (404)
	CodeBadID    Code = "BAD_ID"    // identifier not a valid ObjectID (400)
	CodeInternal Code = "INTERNAL"  // store or server failure (500)
)

// Error is the domain error carried between the store, services and handlers.
// Fields holds per-field validation messages when the failure came from
// payload or schema validation.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
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

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Invalid builds a validation error with optional per-field messages
func Invalid(message string, fields map[string]string) *Error {
	return &Error{Code: CodeInvalid, Message: message, Fields: fields}
}

// NotFound builds a not-found error
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// BadID builds a malformed-identifier error
func BadID(message string) *Error {
	return &Error{Code: CodeBadID, Message: message}
}

// Internal wraps a store or server failure
func Internal(message string, err error) *Error {
	return &Error{Code: CodeInternal, Message: message, Err: err}
}

// CodeOf extracts the classification from err, defaulting to CodeInternal
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// FieldsOf extracts per-field messages from err, if any
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// Is reports whether err carries the given code
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
