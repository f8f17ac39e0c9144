package middleware

import (
	"context"

	"github.com/erp/bizid/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Profiling labels the request goroutine with its method and route template,
// so Pyroscope samples can be filtered per endpoint. Health routes are skipped.
func Profiling(enabled bool, skipRoutes ...string) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	skip := make(map[string]bool, len(skipRoutes))
	for _, r := range skipRoutes {
		skip[r] = true
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || skip[route] {
			c.Next()
			return
		}

		labels := map[string]string{
			telemetry.ProfilingLabelMethod: c.Request.Method,
			telemetry.ProfilingLabelRoute:  route,
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
