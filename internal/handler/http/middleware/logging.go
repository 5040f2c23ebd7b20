package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

// AccessLog writes one structured line per request after it completes.
func AccessLog(logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			logger.Error(c.Request.Context(), "http request", args...)
		case status >= 400:
			logger.Warn(c.Request.Context(), "http request", args...)
		default:
			logger.Info(c.Request.Context(), "http request", args...)
		}
	}
}
