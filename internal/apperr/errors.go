// Package apperr holds the coded errors shared by services and handlers.
//
// Services return *Error values; handlers turn them into HTTP responses
// through Code.HTTPStatus. Matching works with errors.Is against the
// sentinels (ErrNotFound, ErrConflict, ...) since Is compares codes only.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeNotFound          Code = "NOT_FOUND"
	CodeConflict          Code = "CONFLICT"
	CodeDependencyFailure Code = "DEPENDENCY_FAILURE"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeInternal          Code = "INTERNAL"
)

func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeDependencyFailure:
		return http.StatusBadGateway
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// FieldErrors maps a request field name to a human readable problem.
type FieldErrors map[string]string

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) HTTPStatus() int { return e.Code.HTTPStatus() }

func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

var (
	ErrValidation        = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrConflict          = &Error{Code: CodeConflict, Message: "conflict"}
	ErrDependencyFailure = &Error{Code: CodeDependencyFailure, Message: "dependency failure"}
	ErrUnauthorized      = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden         = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrInternal          = &Error{Code: CodeInternal, Message: "internal error"}
)

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails is the field-level variant used by request validation.
func ValidationWithDetails(msg string, details FieldErrors) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// InvalidField is shorthand for a validation error on a single field.
func InvalidField(field, problem string) *Error {
	return ValidationWithDetails("validation failed", FieldErrors{field: problem})
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness violation on field.
func Conflict(field, msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg, Details: FieldErrors{field: msg}}
}

// DependencyFailure wraps a failed call to storage, mail or another collaborator.
func DependencyFailure(msg string, cause error) *Error {
	return &Error{Code: CodeDependencyFailure, Message: msg, cause: cause}
}

func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func Internal(msg string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: msg, cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
