// Package rpc implements the request/reply envelope protocol spoken
// between the gateway and the backend services, the HTTP caller that
// invokes remote operations, the AMQP emitter for fire-and-forget events,
// and the server side that mounts operation handlers.
package rpc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/chirper/social-system/internal/core/domain"
)

// SuccessEnvelope is the wire shape of every successful inter-service
// reply. Success is a literal true discriminating it from ErrorEnvelope.
type SuccessEnvelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Timestamp  string          `json:"timestamp"`
}

// ErrorEnvelope is the wire shape of every failed inter-service reply.
// Code carries the stable taxonomy id; Errors carries structured
// validation detail when applicable.
type ErrorEnvelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Code       int    `json:"code,omitempty"`
	Errors     any    `json:"errors,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// NewSuccessEnvelope wraps payload data for the wire.
func NewSuccessEnvelope(statusCode int, message string, data any) (SuccessEnvelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return SuccessEnvelope{}, fmt.Errorf("marshal envelope data: %w", err)
	}
	return SuccessEnvelope{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       raw,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

// NewErrorEnvelope wraps a ServiceError for the wire.
func NewErrorEnvelope(err *ServiceError) ErrorEnvelope {
	return ErrorEnvelope{
		Success:    false,
		StatusCode: err.StatusCode,
		Message:    err.Message,
		Code:       err.Code,
		Errors:     err.Errors,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// ServiceError is the normalized form of any inter-service failure:
// a domain error envelope from a backend, or a transport-level failure.
// The remote taxonomy code is preserved so the gateway can re-surface a
// stable id to the client instead of a generic failure.
type ServiceError struct {
	StatusCode int
	Code       int
	Message    string
	Errors     any
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
}

// Upstream reports whether the failure is transport-level (the remote
// service never produced a domain reply). Operators need to tell these
// apart from remote domain errors such as "bad token".
func (e *ServiceError) Upstream() bool {
	return e.Code == domain.CodeUpstreamUnavailable || e.Code == domain.CodeUpstreamTimeout
}

// NewUpstreamError classifies a transport failure without leaking the
// underlying transport error text to clients.
func NewUpstreamError(timeout bool) *ServiceError {
	if timeout {
		return &ServiceError{
			StatusCode: http.StatusGatewayTimeout,
			Code:       domain.CodeUpstreamTimeout,
			Message:    "upstream service timed out",
		}
	}
	return &ServiceError{
		StatusCode: http.StatusBadGateway,
		Code:       domain.CodeUpstreamUnavailable,
		Message:    "upstream service unavailable",
	}
}
