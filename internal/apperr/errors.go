// Package apperr defines the service error taxonomy and its HTTP mapping.
package apperr

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown            Code = "UNKNOWN"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeTokenInvalid       Code = "TOKEN_INVALID"
	CodeValidation         Code = "VALIDATION"
	CodeInvalidAmount      Code = "INVALID_AMOUNT"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodeBalanceNotFound    Code = "BALANCE_NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeTransactionFailed  Code = "TRANSACTION_FAILED"
	CodeStorage            Code = "STORAGE"
)

// HTTPStatus returns the response status for the code.
//
// A missing balance row answers 500: existing clients treat lending before
// the first balance-set as a server-side failure.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthenticated, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeTokenExpired, CodeTokenInvalid:
		return http.StatusForbidden
	case CodeValidation, CodeInvalidAmount:
		return http.StatusBadRequest
	case CodeUserNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Internal reports whether the message must not be shown to clients.
func (c Code) Internal() bool {
	switch c {
	case CodeTransactionFailed, CodeStorage, CodeUnknown:
		return true
	}
	return false
}

// Error is the domain error type.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Client-facing message
	Cause   error  // Wrapped underlying error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
