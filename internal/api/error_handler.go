// Package api wires the gateway's HTTP surface: the router, the central
// error handler, and the request handlers and middleware beneath them.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/rpc"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Normalizes every error into a *rpc.ServiceError with a stable
//     taxonomy code, preserving codes that backend services already set.
//   - Logs unexpected errors internally without leaking details to the
//     client.
//   - Renders the canonical error envelope on every failure path.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		se := resolveError(err, log, c)
		_ = c.JSON(se.StatusCode, rpc.NewErrorEnvelope(se))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) *rpc.ServiceError {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return &rpc.ServiceError{
			StatusCode: he.Code,
			Code:       gatewayCodeFor(he.Code),
			Message:    fmt.Sprintf("%v", he.Message),
		}
	}

	se := rpc.Classify(err)
	if se.StatusCode >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")
	}
	return se
}

func gatewayCodeFor(status int) int {
	switch status {
	case http.StatusNotFound:
		return domain.CodeGatewayNoData
	case http.StatusUnauthorized:
		return domain.CodeGatewayUnauthorized
	case http.StatusForbidden:
		return domain.CodeGatewayForbidden
	case http.StatusInternalServerError:
		return domain.CodeInternalUnexpected
	default:
		return domain.CodeGatewayBadParameter
	}
}
