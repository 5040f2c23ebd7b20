package usecase

import (
	"errors"
	"time"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// JWTService defines the interface for identity token operations.
type JWTService interface {
	GenerateAccessToken(userID string) (string, error)
	// ParseAccessToken returns the subject of a valid token, or ErrTokenExpired
	// or ErrTokenInvalid.
	ParseAccessToken(token string) (string, error)
	TokenTTL() time.Duration
}
