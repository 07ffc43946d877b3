package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the closed set of failure categories the service produces.
// Every error crossing a service boundary carries exactly one kind.
type ErrorKind string

const (
	KindConfiguration     ErrorKind = "configuration"
	KindUpstreamBlocked   ErrorKind = "upstream_blocked"
	KindUpstreamEmpty     ErrorKind = "upstream_empty_response"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindUpstreamReported  ErrorKind = "upstream_reported"
	KindTimeout           ErrorKind = "timeout"
	KindTransport         ErrorKind = "transport"
	KindEmptyStoryboard   ErrorKind = "empty_storyboard"
	KindInternal          ErrorKind = "internal"
)

// AppError is the structured error type used across the service. Message is
// safe to surface to clients; Err holds the underlying cause for logs.
type AppError struct {
	Kind           ErrorKind
	Message        string
	UpstreamStatus int
	BodyExcerpt    string
	Err            error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status-code hint for transport-level callers. Upstream
// reported errors pass their upstream status through when it is an error
// status, so renderer-side 4xx/5xx reach the client unchanged.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindUpstreamBlocked:
		return http.StatusBadRequest
	case KindEmptyStoryboard:
		return http.StatusUnprocessableEntity
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindUpstreamReported:
		if e.UpstreamStatus >= http.StatusBadRequest {
			return e.UpstreamStatus
		}
		return http.StatusBadGateway
	case KindUpstreamEmpty, KindMalformedResponse, KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func NewConfigurationError(message string) *AppError {
	return &AppError{Kind: KindConfiguration, Message: message}
}

func NewUpstreamBlockedError(message string) *AppError {
	return &AppError{Kind: KindUpstreamBlocked, Message: message}
}

func NewUpstreamEmptyResponseError(message string) *AppError {
	return &AppError{Kind: KindUpstreamEmpty, Message: message}
}

func NewMalformedResponseError(message string, bodyExcerpt string) *AppError {
	return &AppError{Kind: KindMalformedResponse, Message: message, BodyExcerpt: bodyExcerpt}
}

func NewUpstreamReportedError(message string, upstreamStatus int) *AppError {
	return &AppError{Kind: KindUpstreamReported, Message: message, UpstreamStatus: upstreamStatus}
}

func NewTimeoutError(message string, err error) *AppError {
	return &AppError{Kind: KindTimeout, Message: message, Err: err}
}

func NewTransportError(message string, err error) *AppError {
	return &AppError{Kind: KindTransport, Message: message, Err: err}
}

func NewEmptyStoryboardError(message string) *AppError {
	return &AppError{Kind: KindEmptyStoryboard, Message: message}
}

// KindOf reports the taxonomy kind of err, unwrapping as needed. Errors that
// are not AppErrors classify as internal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// AsAppError returns err as an *AppError. Unknown errors are wrapped as
// internal with a generic message so raw error text never reaches clients.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Kind: KindInternal, Message: "An unexpected internal error occurred", Err: err}
}
