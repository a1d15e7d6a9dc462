package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/driveway/rental-system/internal/api/metrics"
)

// Metrics records request latency by route pattern, so /v1/cars/:id stays one
// series. Errors are rendered here so the final status code is observed.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
