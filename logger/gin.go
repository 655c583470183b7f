package logger

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GinMiddleware logs one entry per request. 5xx replies are logged at error
// level, 4xx at warn, everything else at debug.
func GinMiddleware(l *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"route":      route,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
			l.Error("request failed", err, fields)
		case status >= 400:
			l.Warn("request rejected", nil, fields)
		default:
			l.Debug("request served", nil, fields)
		}
	}
}
