package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	ports "treatment-scoring-service/internal/core/ports/output"
)

// Metrics records request count and latency per endpoint. The route template
// is preferred over the raw path so label cardinality stays bounded.
func Metrics(recorder ports.MetricsRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		recorder.RecordRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
