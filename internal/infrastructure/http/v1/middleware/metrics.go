package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"fretor/internal/infrastructure/metrics"
)

// Metrics records per-request counters and latency. The route template
// (not the raw path) is used as the label to keep cardinality bounded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
