package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skilltrack/tms-api/internal/service"
)

// Metrics times every request and reports it to the metrics service. The
// route template is used as the path label so ids do not explode cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			// unmatched route, label with the raw path
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
