package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"casebem/pkg/metrics"
)

// Metrics records every request against its route template. Unmatched
// paths are recorded as "unmatched".
func (m Middleware) Metrics(pm *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		pm.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
