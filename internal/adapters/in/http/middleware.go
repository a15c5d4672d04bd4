package http

import (
	"net/http"
	"time"

	"procurement/internal/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// requestLogger logs one line per request and records it in metrics. The
// route label is the registered path pattern, not the raw URL.
func requestLogger(logger *zap.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			elapsed := time.Since(start)
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.ObserveHTTP(c.Request().Method, route, status, elapsed)

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("latency", elapsed),
			}
			if status >= 500 {
				logger.Error("http request", fields...)
			} else {
				logger.Info("http request", fields...)
			}

			return nil
		}
	}
}

// payloadValidator plugs go-playground/validator into echo's c.Validate.
type payloadValidator struct {
	validate *validator.Validate
}

func newPayloadValidator() *payloadValidator {
	return &payloadValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *payloadValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
