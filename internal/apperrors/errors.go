package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a rejection so handlers can map it to an HTTP status and
// callers can tell "someone else already moved it" from "not found" from
// "too far".
type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeAuthorization Code = "AUTHORIZATION_ERROR"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeOutOfRange    Code = "OUT_OF_RANGE"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

// Error is a business-rule rejection. Guard failures are expected outcomes and
// surface to the caller verbatim; only dependency errors hide their cause
// behind a generic message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the code to its numeric class.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeAuthorization, CodeOutOfRange:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func Authorization(msg string) *Error {
	return &Error{Code: CodeAuthorization, Message: msg}
}

func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

func NotFoundMsg(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

func OutOfRange(msg string) *Error {
	return &Error{Code: CodeOutOfRange, Message: msg}
}

func Dependency(err error) *Error {
	return &Error{Code: CodeDependency, Message: "a backing service is unavailable", Err: err}
}

// From returns err as an *Error, wrapping anything unclassified as a
// dependency failure so infrastructure errors never leak raw to callers.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Dependency(err)
}

func IsCode(err error, code Code) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
