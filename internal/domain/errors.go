package domain

import (
	"errors"
	"fmt"
)

// LINE client error types

var (
	// ErrRequestIDUnavailable indicates a narrowcast response carried no x-line-request-id header
	ErrRequestIDUnavailable = errors.New("narrowcast request id unavailable")

	// ErrNotFound indicates a tracked record does not exist
	ErrNotFound = errors.New("data not found")

	// ErrInvalidRequest indicates an invalid request was made (4xx client errors)
	ErrInvalidRequest = errors.New("invalid request")
)

// TransportError wraps a network or transport failure reported by the HTTP transport.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError is returned for non-2xx responses. Body is the upstream payload unchanged.
type HTTPStatusError struct {
	StatusCode int
	Body       string
	RequestID  string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("line api error: status %d - %s", e.StatusCode, e.Body)
}

// Is lets 4xx responses match ErrInvalidRequest.
func (e *HTTPStatusError) Is(target error) bool {
	return target == ErrInvalidRequest && e.StatusCode >= 400 && e.StatusCode < 500
}

// DecodeError reports a response body that does not match the expected shape.
type DecodeError struct {
	Target string
	Field  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "decode " + e.Target
	if e.Field != "" {
		msg += "." + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InvalidOperationError reports an operation that cannot be performed for the given arguments.
type InvalidOperationError struct {
	Operation string
	Reason    string
	Err       error
}

func (e *InvalidOperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid operation %s: %s: %v", e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid operation %s: %s", e.Operation, e.Reason)
}

func (e *InvalidOperationError) Unwrap() error {
	return e.Err
}

func missingField(target, field string) *DecodeError {
	return &DecodeError{Target: target, Field: field, Reason: "required field is missing"}
}

func unknownValue(target, field, value string) *DecodeError {
	return &DecodeError{Target: target, Field: field, Reason: fmt.Sprintf("unknown value %q", value)}
}
