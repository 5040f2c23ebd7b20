package http

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/dto"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

// normalizer is implemented by request DTOs that trim their fields before validation.
type normalizer interface {
	Normalize()
}

// RespondError hands err to the error normalizer middleware, which writes the envelope.
func RespondError(c *gin.Context, err error) {
	middleware.Fail(c, err)
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, dto.Envelope{Success: true, Data: data})
}

// SuccessWithMessage is SuccessHandler with a human readable message.
func SuccessWithMessage(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, dto.Envelope{Success: true, Message: message, Data: data})
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.Envelope{Success: true, Message: message})
}

// BindAndValidate binds the JSON body into req, trims it and runs every
// validation rule. On failure the response is already scheduled and false is returned.
func BindAndValidate(c *gin.Context, v usecasecontract.IValidator, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, apperror.Validation([]apperror.FieldError{{Field: "body", Message: "Request body must be valid JSON"}}))
		return false
	}
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	if fields := v.Struct(req); len(fields) > 0 {
		RespondError(c, apperror.Validation(fields))
		return false
	}
	return true
}

// pathID returns the :name path parameter when it is a well formed id.
// Anything else cannot match a stored row and is reported as not found.
func pathID(c *gin.Context, name, notFoundMsg string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		RespondError(c, apperror.NotFound(notFoundMsg))
		return "", false
	}
	return id, true
}

// queryInt reads a positive integer query parameter; anything else yields 0
// and the use case falls back to its default.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// mustCurrentUser returns the authenticated caller. Routes using it are
// mounted behind AuthMiddleware.
func mustCurrentUser(c *gin.Context) (*entity.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, apperror.Unauthenticated(errors.New("no identity on request")))
		return nil, false
	}
	return user, true
}
