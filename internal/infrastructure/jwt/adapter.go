package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mikiasgoitom/Edulearn/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
// It collapses library errors into usecase.ErrTokenExpired and usecase.ErrTokenInvalid.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager) usecase.JWTService {
	return &JWTServiceAdapter{mgr: mgr}
}

// GenerateAccessToken issues an access token for a user.
func (a *JWTServiceAdapter) GenerateAccessToken(userID string) (string, error) {
	return a.mgr.GenerateToken(userID)
}

// ParseAccessToken validates an access token and returns its subject.
func (a *JWTServiceAdapter) ParseAccessToken(tokenStr string) (string, error) {
	claims, err := a.mgr.VerifyToken(tokenStr)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", usecase.ErrTokenExpired
		}
		return "", usecase.ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (a *JWTServiceAdapter) TokenTTL() time.Duration {
	return a.mgr.ttl
}
