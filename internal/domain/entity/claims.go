package entity

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of an identity token. Only the subject is trusted;
// the role is always re-read from the store.
type Claims struct {
	UserID string `json:"-"`
	jwt.RegisteredClaims
}
