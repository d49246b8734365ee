package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/metrics"
	"github.com/chirper/social-system/internal/rpc"
)

// identityKey is the echo context key the validated claim is stored under.
const identityKey = "identity"

// Identity returns the claim attached by the Auth middleware.
func Identity(c echo.Context) (domain.IdentityClaim, bool) {
	claim, ok := c.Get(identityKey).(domain.IdentityClaim)
	return claim, ok && claim.Valid()
}

// Auth authenticates the request against the auth service and attaches
// the resulting identity claim to the context. It fails closed: a missing
// header, a negative validation or an upstream failure all resolve to a
// rejection, never an implicit allow.
//
// The two failure classes stay distinguishable: a bad token is 401 with
// a taxonomy code, an unreachable auth service is 502/504. Operators
// need to tell "bad token" apart from "auth service outage".
func Auth(auth ports.AuthClient, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				// Fail fast: no backend round-trip for a malformed request.
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return &rpc.ServiceError{
					StatusCode: http.StatusUnauthorized,
					Code:       domain.CodeGatewayUnauthorized,
					Message:    "authorization token not found",
				}
			}

			validation, err := auth.ValidateToken(c.Request().Context(), token)
			if err != nil {
				var se *rpc.ServiceError
				if errors.As(err, &se) && se.Upstream() {
					metrics.AuthRejectionsTotal.WithLabelValues("upstream").Inc()
					log.Error().Err(err).Msg("auth service unreachable")
					return se
				}
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				log.Warn().Err(err).Msg("token validation rejected by auth service")
				return err
			}

			// The remote endpoint can return a negative validation result
			// inside a structurally valid success envelope; both the flag
			// and the identity payload must check out.
			if !validation.IsValid || !validation.User.Valid() {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return &rpc.ServiceError{
					StatusCode: http.StatusUnauthorized,
					Code:       domain.CodeGatewayUnauthorized,
					Message:    "invalid token",
				}
			}

			c.Set(identityKey, validation.User)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <t>"
// header. A missing or malformed header yields ok=false.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
