package rpc

import (
	"errors"
	"net/http"

	"github.com/chirper/social-system/internal/core/domain"
)

// ValidationError carries structured field-level detail for malformed
// payloads. It travels in the envelope's errors field.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Messages[0]
}

// Classify normalizes any error into a *ServiceError with a stable
// taxonomy code and HTTP status. Already-classified errors pass through
// untouched so downstream codes survive gateway re-surfacing.
func Classify(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return &ServiceError{
			StatusCode: http.StatusBadRequest,
			Code:       domain.CodeGatewayBadParameter,
			Message:    "validation failed",
			Errors:     ve.Messages,
		}
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return &ServiceError{StatusCode: http.StatusUnauthorized, Code: domain.CodeGatewayUnauthorized, Message: "unauthenticated"}
	case errors.Is(err, domain.ErrForbidden):
		return &ServiceError{StatusCode: http.StatusForbidden, Code: domain.CodeGatewayForbidden, Message: "forbidden resource"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return &ServiceError{StatusCode: http.StatusUnauthorized, Code: domain.CodeAuthUnauthorized, Message: "invalid username or password"}
	case errors.Is(err, domain.ErrUserNotFound):
		return &ServiceError{StatusCode: http.StatusNotFound, Code: domain.CodeUserNotFound, Message: "user not found"}
	case errors.Is(err, domain.ErrUsernameExists):
		return &ServiceError{StatusCode: http.StatusConflict, Code: domain.CodeUserUsernameExists, Message: "username already exists"}
	case errors.Is(err, domain.ErrTweetNotFound):
		return &ServiceError{StatusCode: http.StatusNotFound, Code: domain.CodeTweetNotFound, Message: "tweet not found"}
	case errors.Is(err, domain.ErrCredentialNotFound):
		return &ServiceError{StatusCode: http.StatusNotFound, Code: domain.CodeAuthCredNotFound, Message: "user credential not found"}
	case errors.Is(err, domain.ErrCredentialExists):
		return &ServiceError{StatusCode: http.StatusConflict, Code: domain.CodeAuthCredExists, Message: "user credential already exists"}
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return NewUpstreamError(false)
	}

	return &ServiceError{
		StatusCode: http.StatusInternalServerError,
		Code:       domain.CodeInternalUnexpected,
		Message:    "internal server error",
	}
}
