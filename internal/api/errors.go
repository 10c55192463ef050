// Package api is the single gateway between storefront features and the
// REST backend. It owns the bearer token, builds and dispatches requests,
// decodes responses and reports every failure as an *Error.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for classification. Use errors.Is(err, api.ErrNotFound).
var (
	ErrTimeout      = errors.New("api: request timed out")
	ErrNetwork      = errors.New("api: network failure")
	ErrUnexpected   = errors.New("api: unexpected failure")
	ErrBadRequest   = errors.New("api: bad request")
	ErrUnauthorized = errors.New("api: unauthorized")
	ErrForbidden    = errors.New("api: forbidden")
	ErrNotFound     = errors.New("api: not found")
	ErrConflict     = errors.New("api: conflict")
	ErrValidation   = errors.New("api: validation failed")
	ErrThrottled    = errors.New("api: throttled")
	ErrServerError  = errors.New("api: server error")
)

// Error is the only error shape the client returns. Status mirrors HTTP
// semantics; failures without a response use StatusTimeout or
// StatusGenericFailure.
type Error struct {
	Status    int
	Message   string
	Payload   any    // parsed response body, or the underlying Go error
	RequestID string // X-Request-ID of the failed request, if one was sent
	Err       error  // sentinel, for errors.Is()
}

// NewError builds an *Error whose sentinel is derived from status.
func NewError(status int, message string, payload any) *Error {
	return &Error{
		Status:  status,
		Message: message,
		Payload: payload,
		Err:     classifyStatus(status),
	}
}

func (e *Error) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("api: HTTP %d (request-id: %s): %s", e.Status, e.RequestID, e.Message)
	}

	return fmt.Sprintf("api: HTTP %d: %s", e.Status, e.Message)
}

// Unwrap exposes the sentinel and, for unexpected failures, the cause.
func (e *Error) Unwrap() []error {
	var errs []error

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	if cause, ok := e.Payload.(error); ok {
		errs = append(errs, cause)
	}

	return errs
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// StatusOf returns the status carried by err, or 0 if err is not an *Error.
func StatusOf(err error) int {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Status
	}

	return 0
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for statuses without a dedicated sentinel.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusRequestTimeout:
		return ErrTimeout
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}

func timeoutError(requestID string) *Error {
	return &Error{
		Status:    StatusTimeout,
		Message:   MsgTimeout,
		RequestID: requestID,
		Err:       ErrTimeout,
	}
}

func networkError(requestID string, cause error) *Error {
	return &Error{
		Status:    StatusGenericFailure,
		Message:   MsgNetwork,
		Payload:   cause,
		RequestID: requestID,
		Err:       ErrNetwork,
	}
}

func unexpectedError(requestID string, cause error) *Error {
	return &Error{
		Status:    StatusGenericFailure,
		Message:   MsgUnknown,
		Payload:   cause,
		RequestID: requestID,
		Err:       ErrUnexpected,
	}
}
