package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
)

func asAppError(err error) *apperror.Error {
	var e *apperror.Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Fail records err for ErrorNormalizer and stops the handler chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
