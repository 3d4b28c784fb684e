package middleware

import (
	"strconv"
	"time"

	"artist-site/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latency per route template.
// Unmatched requests share the "<no-route>" label.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "<no-route>"
		}
		method := c.Request.Method

		telemetry.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		telemetry.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
