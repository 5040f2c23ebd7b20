package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/dto"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/metrics"
)

const rateLimitedMessage = "Too many requests, please try again later."

// NewLimiter builds a per-client-IP limiter allowing limit requests per window.
func NewLimiter(limit int, window time.Duration) *limiter.Limiter {
	lmt := tollbooth.NewLimiter(float64(limit)/window.Seconds(), &limiter.ExpirableOptions{DefaultExpirationTTL: window})
	lmt.SetBurst(limit)
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	return lmt
}

// GlobalRateLimiter applies lmt to every route. The rejection body is the
// standard failure envelope.
func GlobalRateLimiter(lmt *limiter.Limiter) gin.HandlerFunc {
	body, _ := json.Marshal(dto.Envelope{Success: false, Message: rateLimitedMessage})
	lmt.SetMessage(string(body))
	lmt.SetMessageContentType("application/json; charset=utf-8")
	lmt.SetOnLimitReached(func(_ http.ResponseWriter, _ *http.Request) {
		metrics.RateLimitHitsTotal.WithLabelValues("global").Inc()
	})
	return tollbooth_gin.LimitHandler(lmt)
}

// RateLimiter applies lmt to a route group and reports rejections through
// ErrorNormalizer.
func RateLimiter(lmt *limiter.Limiter, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpErr := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpErr != nil {
			metrics.RateLimitHitsTotal.WithLabelValues(name).Inc()
			Fail(c, &apperror.Error{Kind: apperror.KindRateLimited, Message: rateLimitedMessage})
			return
		}
		c.Next()
	}
}
