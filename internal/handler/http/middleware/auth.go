package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/metrics"
	"github.com/mikiasgoitom/Edulearn/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

const currentUserKey = "currentUser"

var errMissingToken = errors.New("missing bearer token")

// Authenticator resolves a bearer token to a live user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware requires a valid bearer token whose subject still exists.
// Every failure produces the same 401 response.
func AuthMiddleware(authn Authenticator, logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, authn)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindUnauthenticated {
				reason := failureReason(err)
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				logger.Debug(c.Request.Context(), "authentication rejected", "reason", reason, "path", c.Request.URL.Path)
			}
			Fail(c, err)
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is presented and
// otherwise continues anonymously.
func OptionalAuth(authn Authenticator, logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, authn)
		if err == nil {
			c.Set(currentUserKey, user)
		} else if !errors.Is(err, errMissingToken) {
			logger.Debug(c.Request.Context(), "continuing anonymously", "reason", failureReason(err))
		}
		c.Next()
	}
}

// RequireRoles lets the request through only when the authenticated caller
// holds one of roles. It must be mounted after AuthMiddleware.
func RequireRoles(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := CurrentUser(c)
		decision := usecase.Authorize(user, roles...)
		if decision.Allowed {
			c.Next()
			return
		}
		if decision.Reason == usecase.DenyNoIdentity {
			Fail(c, apperror.Unauthenticated(errMissingToken))
			return
		}
		Fail(c, apperror.Forbidden("You do not have permission to perform this action"))
	}
}

// CurrentUser returns the identity attached by AuthMiddleware or OptionalAuth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}

func resolveUser(c *gin.Context, authn Authenticator) (*entity.User, error) {
	token, err := bearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil, apperror.Unauthenticated(err)
	}
	return authn.Authenticate(c.Request.Context(), token)
}

// bearerToken extracts the credential from "Bearer <token>"; the scheme is
// matched case-insensitively.
func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errMissingToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", usecase.ErrTokenInvalid
	}
	return parts[1], nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, errMissingToken):
		return metrics.AuthReasonMissing
	case errors.Is(err, usecase.ErrTokenExpired):
		return metrics.AuthReasonExpired
	case errors.Is(err, usecase.ErrUnknownSubject):
		return metrics.AuthReasonUnknownSubject
	case errors.Is(err, usecase.ErrTokenInvalid):
		return metrics.AuthReasonMalformed
	default:
		return "error"
	}
}
