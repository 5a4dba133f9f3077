package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWTAuthenticator struct {
	secret string
	aud    string
	iss    string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTAuthenticator(secret, aud, iss string, ttl time.Duration) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret, aud: aud, iss: iss, ttl: ttl, now: time.Now}
}

// GenerateToken signs a token whose subject is the shopper session id.
func (a *JWTAuthenticator) GenerateToken(sessionID string) (string, error) {
	now := a.now()
	claims := jwt.MapClaims{
		"sub": sessionID,
		"exp": now.Add(a.ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"iss": a.iss,
		"aud": a.aud,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(a.secret))
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (a *JWTAuthenticator) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(a.iss),
		jwt.WithAudience(a.aud),
		jwt.WithTimeFunc(a.now),
	)
}

// SessionIDFromToken returns the subject of an already validated token.
func SessionIDFromToken(token *jwt.Token) (string, error) {
	if token == nil || !token.Valid {
		return "", ErrInvalidToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
