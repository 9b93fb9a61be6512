package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sensitiveParams are redacted from logged query strings
var sensitiveParams = []string{
	"key",
	"api_key",
	"apikey",
	"token",
	"secret",
	"password",
	"email",
	"phone",
}

// RequestLogger logs HTTP requests with timing and status information
func RequestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for noisy endpoints
		if shouldSkip(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []interface{}{
			"method", c.Request.Method,
			"path", sanitizePath(c.Request.URL.Path, c.Request.URL.RawQuery),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"request_id", GetRequestID(c),
		}

		if status >= http.StatusInternalServerError {
			logger.Warnw("request", attrs...)
		} else {
			logger.Infow("request", attrs...)
		}
	}
}

func shouldSkip(path string) bool {
	return path == "/health" || path == "/metrics"
}

// sanitizePath removes sensitive query parameters from the path for logging
func sanitizePath(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}

	parts := strings.Split(rawQuery, "&")
	safeParts := make([]string, 0, len(parts))

	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}

		if isSensitive(kv[0]) {
			safeParts = append(safeParts, kv[0]+"=[REDACTED]")
		} else {
			safeParts = append(safeParts, part)
		}
	}

	if len(safeParts) == 0 {
		return path
	}
	return path + "?" + strings.Join(safeParts, "&")
}

func isSensitive(key string) bool {
	key = strings.ToLower(key)
	for _, s := range sensitiveParams {
		if key == s {
			return true
		}
	}
	return false
}
