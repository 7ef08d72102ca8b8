package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidOrExpired is returned for every session token that fails validation.
// Signature, structure and expiry failures are deliberately not distinguished
// so that no cryptographic validation detail leaks to the transport layer.
var ErrInvalidOrExpired = errors.New("session token is invalid or expired")

// SessionClaims represents the decoded payload of a session token.
// The expiry instant is the only claim a token carries; there is no server-side session state besides it.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Remaining returns the session lifetime left at the given instant.
// It never returns a negative duration; an expired token cannot reach this
// method in the first place because Decode rejects it.
func (claims *SessionClaims) Remaining(now time.Time) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	remaining := claims.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TokenService issues and validates the signed session tokens carried by the access token cookie
type TokenService struct {
	signingKey []byte
	lifetime   time.Duration
}

// NewTokenService creates a new token service using the given symmetric signing key and session lifetime
func NewTokenService(signingKey []byte, lifetime time.Duration) *TokenService {
	return &TokenService{
		signingKey: signingKey,
		lifetime:   lifetime,
	}
}

// Issue creates a new HS256-signed session token that expires after the configured session lifetime
func (service *TokenService) Issue() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(service.lifetime)),
		},
	})
	return token.SignedString(service.signingKey)
}

// Decode verifies the signature and expiry of a session token and returns its decoded claims.
// Every failure is reported as ErrInvalidOrExpired.
func (service *TokenService) Decode(raw string) (*SessionClaims, error) {
	claims := new(SessionClaims)
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return service.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidOrExpired
	}
	return claims, nil
}
