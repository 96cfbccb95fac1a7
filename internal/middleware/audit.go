package middleware

import (
	"log/slog"
	"time"

	"github.com/kept7/payment-service/internal/common"

	"github.com/labstack/echo/v4"
)

// RequestAudit logs every request after it completes: method, path,
// status, latency and the authenticated caller when one is known.
// Password fields never appear here because only metadata is logged.
func RequestAudit(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			attrs := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"latency", time.Since(start).String(),
				"remote_ip", c.RealIP(),
			}
			if identity, ok := common.GetIdentityFromContext(c.Request().Context()); ok {
				attrs = append(attrs, "user", identity.Email)
			}

			if status >= 500 {
				logger.Error("request failed", attrs...)
			} else {
				logger.Info("request", attrs...)
			}
			return err
		}
	}
}
