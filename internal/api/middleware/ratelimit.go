package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/rpc"
)

// RateLimit applies a fixed-window per-IP limit backed by Redis, used on
// the public register/login routes. A Redis failure fails open: losing
// rate limiting is preferable to taking authentication down with it.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := "rate_limit:" + c.RealIP()

			pipe := rdb.Pipeline()
			incr := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, window)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Warn().Err(err).Msg("rate limit check failed, allowing request")
				return next(c)
			}

			if incr.Val() > int64(limit) {
				return &rpc.ServiceError{
					StatusCode: http.StatusTooManyRequests,
					Code:       domain.CodeGatewayRateLimited,
					Message:    "rate limit exceeded",
				}
			}
			return next(c)
		}
	}
}
