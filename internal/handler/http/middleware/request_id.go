package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/domain/contract"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or assigns a new one, and
// stores it on the request context for log correlation.
func RequestID(gen contract.IRandomGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			generated, err := gen.GenerateRandomToken(16)
			if err == nil {
				id = generated
			}
		}
		if id != "" {
			c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
			c.Header(RequestIDHeader, id)
		}
		c.Next()
	}
}
