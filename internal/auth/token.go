package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of issued tokens.
const TokenTTL = 15 * time.Minute

// ErrInvalidToken is returned when a token is malformed, carries a bad
// signature, or has expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload embedded in issued tokens. Scopes are bound at
// issuance from the API key used during sign-in.
type Claims struct {
	jwt.RegisteredClaims
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Scopes []string `json:"scopes"`
}

// Principal derives the request identity carried by the claims.
func (c *Claims) Principal() Principal {
	return Principal{
		ID:     c.Subject,
		Name:   c.Name,
		Email:  c.Email,
		Scopes: c.Scopes,
	}
}

// TokenService issues and verifies HS256 tokens with a shared secret.
// Both operations are pure computations; the service holds no per-request
// state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. A missing secret is a fatal
// configuration error, not a per-request failure.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	return &TokenService{secret: []byte(secret), ttl: TokenTTL}, nil
}

// Issue signs a token embedding the principal's identity and scopes verbatim.
func (s *TokenService) Issue(p Principal) (string, error) {
	if p.ID == "" {
		return "", errors.New("auth: subject id is required")
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Name:   p.Name,
		Email:  p.Email,
		Scopes: p.Scopes,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify validates signature and expiry and returns the embedded claims.
// It never re-fetches or recomputes scopes.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
