package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

// Recovery turns a handler panic into an internal error so the process keeps
// serving. It must run inside ErrorNormalizer.
func Recovery(logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				metrics.PanicsRecovered.Inc()
				stack := debug.Stack()
				logger.Error(c.Request.Context(), "panic recovered", "panic", fmt.Sprint(rec), "stack", string(stack))
				Fail(c, apperror.Internal(fmt.Errorf("panic: %v\n%s", rec, stack)))
			}
		}()
		c.Next()
	}
}
