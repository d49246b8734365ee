package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/metrics"
	"github.com/chirper/social-system/internal/rpc"
)

// RBAC enforces role-based access control over the claim attached by
// Auth. An empty allow-list admits any authenticated caller. RBAC must
// never run before Auth: a missing claim is an internal wiring error and
// is rejected as such, not silently allowed.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, ok := Identity(c)
			if !ok {
				return &rpc.ServiceError{
					StatusCode: http.StatusInternalServerError,
					Code:       domain.CodeInternalUnexpected,
					Message:    "role check without an authenticated identity",
				}
			}

			if len(allowed) == 0 {
				return next(c)
			}

			if _, ok := allowed[claim.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return &rpc.ServiceError{
					StatusCode: http.StatusForbidden,
					Code:       domain.CodeGatewayForbidden,
					Message:    "forbidden resource",
				}
			}
			return next(c)
		}
	}
}
