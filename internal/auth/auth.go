package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Authenticator issues and checks the bearer tokens that bind an HTTP client to
// a shopper session.
type Authenticator interface {
	GenerateToken(sessionID string) (string, error)
	ValidateToken(token string) (*jwt.Token, error)
}
