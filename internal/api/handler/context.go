package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/chirper/social-system/internal/api/middleware"
	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/rpc"
)

// ctxIdentity extracts the identity claim attached by the Auth middleware.
// A missing claim on a protected route is a wiring bug, reported as an
// internal error rather than silently treated as anonymous.
func ctxIdentity(c echo.Context) (domain.IdentityClaim, error) {
	claim, ok := middleware.Identity(c)
	if !ok {
		return domain.IdentityClaim{}, &rpc.ServiceError{
			StatusCode: http.StatusInternalServerError,
			Code:       domain.CodeInternalUnexpected,
			Message:    "missing authentication claims",
		}
	}
	return claim, nil
}

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// pageParams parses page/limit query parameters with defaults and bounds.
func pageParams(c echo.Context) (page, limit int, err error) {
	page, err = positiveQueryInt(c, "page", defaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err = positiveQueryInt(c, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, nil
}

func positiveQueryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &rpc.ServiceError{
			StatusCode: http.StatusBadRequest,
			Code:       domain.CodeGatewayBadParameter,
			Message:    name + " must be a positive integer",
		}
	}
	return n, nil
}
