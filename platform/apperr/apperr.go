// Package apperr provides standardized domain error types for the application.
// Domain services return these typed errors, and the HTTP layer maps them to
// appropriate status codes and a stable machine-readable error code.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindValidation indicates invalid input data.
	KindValidation
	// KindBusiness indicates a request that is well-formed but rejected by
	// business state (wrong quote status, missing linkage, empty item list).
	KindBusiness
	// KindMethodNotAllowed indicates a wrong HTTP method.
	KindMethodNotAllowed
	// KindUnsupportedMedia indicates a wrong or missing content type.
	KindUnsupportedMedia
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// Error is a domain error with a typed Kind for HTTP mapping and a stable
// Code for the front end to dispatch on.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindBusiness:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New creates a new domain error with the given kind, code and message.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Convenience constructors for common error types.

// Validation creates a validation error.
func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

// Business creates a business-state error.
func Business(code, message string) *Error {
	return New(KindBusiness, code, message)
}

// MethodNotAllowed creates a wrong-method error.
func MethodNotAllowed(message string) *Error {
	return New(KindMethodNotAllowed, "METHOD_NOT_ALLOWED", message)
}

// UnsupportedMedia creates a wrong-content-type error.
func UnsupportedMedia(code, message string) *Error {
	return New(KindUnsupportedMedia, code, message)
}

// Internal creates an internal server error.
func Internal(code, message string) *Error {
	return New(KindInternal, code, message)
}

// GetCode extracts the stable code from an error.
// Returns the empty string if the error is not an *Error.
func GetCode(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}

// Is checks if err is an *Error with the given code.
func Is(err error, code string) bool {
	return GetCode(err) == code
}
