package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voltstack/commerce-backend/internal/observability"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

// RequestMetrics records per-route counters and latency. The route template
// is used instead of the raw path so ids do not explode the label space.
func RequestMetrics(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(route, c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	requestLog := log.With("middleware", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start).String(),
		}
		if status >= 500 {
			requestLog.Error("request failed", fields...)
			return
		}
		requestLog.Info("request completed", fields...)
	}
}
