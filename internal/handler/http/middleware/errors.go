package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

// StatusFor maps a failure category to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindSelfAction:
		return http.StatusBadRequest
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorNormalizer turns the last error recorded on the context into the
// response envelope. Internal detail is included only when exposeDetail is set.
func ErrorNormalizer(logger usecasecontract.IAppLogger, exposeDetail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		body, status := Envelope(err, exposeDetail)
		if status >= http.StatusInternalServerError {
			logger.Error(c.Request.Context(), "request failed",
				"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// Envelope builds the failure body and status for err.
func Envelope(err error, exposeDetail bool) (dto.Envelope, int) {
	appErr := asAppError(err)
	if appErr == nil {
		appErr = apperror.Internal(err)
	}
	status := StatusFor(appErr.Kind)
	body := dto.Envelope{Success: false, Message: appErr.Message}

	switch appErr.Kind {
	case apperror.KindValidation:
		body.Errors = appErr.Fields
	case apperror.KindInternal:
		body.Message = "Internal server error"
		if exposeDetail && appErr.Err != nil {
			body.Stack = appErr.Err.Error()
		}
	}
	return body, status
}
