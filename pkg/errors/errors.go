package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of a failure
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeTransport   ErrorType = "transport"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeSchema      ErrorType = "schema"
	ErrorTypeAuth        ErrorType = "auth"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeAPI         ErrorType = "api"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents a typed client error
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	// Field names the offending JSON field for schema errors
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	if e.Field != "" {
		msg += fmt.Sprintf(" [field %s]", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given type
func New(errorType ErrorType, code int, message string) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Code:    code,
	}
}

// Wrap creates an error of the given type around a cause
func Wrap(errorType ErrorType, code int, message string, err error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Code:    code,
		Err:     err,
	}
}

// IsType reports whether any error in err's chain is an *Error of the given type
func IsType(err error, errorType ErrorType) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == errorType
	}
	return false
}

// TypeOf returns the type of the first *Error in err's chain
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// TypeForStatus maps an HTTP status code to an error type.
// Successful statuses map to the empty type.
func TypeForStatus(statusCode int) ErrorType {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return ""
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return ErrorTypeAuth
	case statusCode == http.StatusNotFound:
		return ErrorTypeNotFound
	case statusCode == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case statusCode >= 500:
		return ErrorTypeServerError
	case statusCode >= 400:
		return ErrorTypeAPI
	default:
		return ErrorTypeUnknown
	}
}
