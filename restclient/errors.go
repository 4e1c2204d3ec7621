package restclient

import (
	"errors"
	"fmt"
)

// ErrorCode classifies client errors.
type ErrorCode int

const (
	// ErrCodeBuild indicates the request could not be constructed from its
	// parameters. Build errors surface before the pipeline is entered.
	ErrCodeBuild ErrorCode = iota
	// ErrCodeRejected indicates an interceptor aborted the request before
	// dispatch.
	ErrCodeRejected
	// ErrCodeTransport indicates a connectivity failure (refused, DNS,
	// broken connection). No response was received.
	ErrCodeTransport
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout
	// ErrCodeCanceled indicates the caller canceled the request.
	ErrCodeCanceled
	// ErrCodeHTTP indicates a non-2xx response with no (or failed)
	// recovery. The error carries the status code and body.
	ErrCodeHTTP
	// ErrCodeDecode indicates the response body could not be decoded into
	// the requested type.
	ErrCodeDecode
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeBuild:
		return "build"
	case ErrCodeRejected:
		return "rejected"
	case ErrCodeTransport:
		return "transport"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeCanceled:
		return "canceled"
	case ErrCodeHTTP:
		return "http"
	case ErrCodeDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a structured client error with classification.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// StatusCode is the HTTP status code (0 for pre-response errors).
	StatusCode int
	// Message describes the error.
	Message string
	// Retryable indicates whether a higher layer may retry the call.
	Retryable bool
	// Body is the response body for HTTP errors, or the offending bytes
	// for decode errors. May be nil.
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("restclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("restclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewBuildError creates a request-construction error.
func NewBuildError(msg string, err error) *Error {
	return &Error{Code: ErrCodeBuild, Message: msg, Err: err}
}

// NewRejectedError creates an interceptor-abort error.
func NewRejectedError(msg string) *Error {
	return &Error{Code: ErrCodeRejected, Message: msg}
}

// NewTransportError creates a connectivity error.
func NewTransportError(err error) *Error {
	return &Error{Code: ErrCodeTransport, Message: err.Error(), Retryable: true, Err: err}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewCanceledError creates a cancellation error.
func NewCanceledError(err error) *Error {
	return &Error{Code: ErrCodeCanceled, Message: "request canceled", Err: err}
}

// NewHTTPError creates an HTTP status error carrying the response body.
func NewHTTPError(statusCode int, body []byte) *Error {
	return &Error{
		Code:       ErrCodeHTTP,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Retryable:  statusCode == 429 || statusCode >= 500,
		Body:       body,
	}
}

// NewDecodeError creates a decode error carrying the offending bytes.
func NewDecodeError(msg string, body []byte, err error) *Error {
	return &Error{Code: ErrCodeDecode, Message: msg, Body: body, Err: err}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for status codes in [200, 300).
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	return NewHTTPError(statusCode, body)
}

// IsBuild checks if an error is a request-construction error.
func IsBuild(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeBuild
}

// IsRejected checks if an error is an interceptor-abort error.
func IsRejected(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRejected
}

// IsTransport checks if an error is a connectivity error.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTransport
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsCanceled checks if an error is a cancellation error.
func IsCanceled(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeCanceled
}

// IsHTTP checks if an error is an HTTP status error.
func IsHTTP(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeHTTP
}

// IsDecode checks if an error is a decode error.
func IsDecode(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeDecode
}

// IsRetryable checks if a higher layer may retry the call.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusCode extracts the HTTP status code from an error, or 0 if the
// error carries none.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
