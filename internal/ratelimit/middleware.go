package ratelimit

import (
	"strconv"

	"task-manager/internal/apperror"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Middleware 以用戶端 IP 為 key；Redis 故障時放行並記錄錯誤
func Middleware(l *Limiter, logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Enabled() {
				return next(c)
			}
			res, err := l.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				if logger != nil {
					logger.WithError(err).Warn("login throttle unavailable")
				}
				return next(c)
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(l.limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			if !res.Allowed {
				h.Set("Retry-After", res.RetryAfterSeconds())
				return apperror.TooManyRequests("too many attempts, please try again later")
			}
			return next(c)
		}
	}
}
