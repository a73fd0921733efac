package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/camfleet/internal/errs"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

const rateLimitKeyPrefix = "camfleet:ratelimit:"

// RateLimitMiddleware counts attempts per client IP in Redis with a fixed
// window.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// LimitLogin allows Auth.LoginAttempts requests per Auth.LoginWindow per IP.
// Without Redis, or with a zero limit, it is a pass-through. Redis errors
// let the request through.
func (r *RateLimitMiddleware) LimitLogin() echo.MiddlewareFunc {
	limit := r.server.Config.Auth.LoginAttempts
	window := r.server.Config.Auth.LoginWindow

	if r.server.Redis == nil || limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	windowSeconds := max(int64(window/time.Second), 1)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			bucket := time.Now().Unix() / windowSeconds
			key := fmt.Sprintf("%slogin:%s:%d", rateLimitKeyPrefix, c.RealIP(), bucket)

			pipe := r.server.Redis.TxPipeline()
			incr := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, window)
			if _, err := pipe.Exec(ctx); err != nil {
				GetLogger(c).Warn().Err(err).Msg("rate limiter unavailable")
				return next(c)
			}

			remaining := int64(limit) - incr.Val()
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(max(remaining, 0), 10))

			if remaining < 0 {
				r.RecordRateLimitHit(c.Path())
				return errs.NewTooManyRequestsError("too many login attempts, try again later")
			}
			return next(c)
		}
	}
}

// RecordRateLimitHit reports a rejected request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
