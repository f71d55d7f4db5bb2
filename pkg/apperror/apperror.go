package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for the transport layer.
type Code string

const (
	CodeValidation   Code = "validation"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeDuplicate    Code = "duplicate"
	CodeInvalidState Code = "invalid_state"
	CodeRateLimited  Code = "rate_limited"
	CodeInternal     Code = "internal"
)

// Error is the error contract shared by use cases and repositories.
// Message is safe to show to clients, Err is not.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match two *Error values by code and message, so sentinels
// survive being rebuilt with a wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func Validation(message string) *Error   { return New(CodeValidation, message) }
func NotFound(message string) *Error     { return New(CodeNotFound, message) }
func Duplicate(message string) *Error    { return New(CodeDuplicate, message) }
func InvalidState(message string) *Error { return New(CodeInvalidState, message) }
func Forbidden(message string) *Error    { return New(CodeForbidden, message) }

func Internal(err error) *Error { return Wrap(CodeInternal, "internal server error", err) }

// CodeOf returns the code of the first *Error in the chain, or CodeInternal.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

func Is(err error, code Code) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}

// HTTPStatus maps an error to the status code returned to clients.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicate, CodeInvalidState:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the client-facing text; internal details never leave the process.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != CodeInternal {
		return ae.Message
	}
	return "internal server error"
}
