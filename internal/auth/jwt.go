// Package auth mints and verifies the bearer tokens used by both the HTTP
// layer and the live connection handshake. Both validate with the same
// HS256 secret, so a token issued at login works everywhere.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"studymatch/backend/internal/apperr"
)

// Claims carries the authenticated user ID alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// GenerateToken signs a token for userID valid for the given duration.
func GenerateToken(userID string, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "studymatch",
		},
		UserID: userID,
	})
	return token.SignedString(secret)
}

// UserIDFromToken validates the token and returns the embedded user ID.
// Any parse, signature or expiry failure comes back as ErrUnauthorized.
func UserIDFromToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrUnauthorized
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", apperr.ErrUnauthorized
	}
	return claims.UserID, nil
}
