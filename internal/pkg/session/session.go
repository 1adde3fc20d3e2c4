// Package session mints and validates the service's own bearer credential: a
// signed JWT carrying the user id as subject. Tokens are stateless; there is
// no revocation, a credential stays valid until its expiry.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/janmeyer/memora/internal/pkg/env"
)

// ErrInvalidCredential covers every validation failure: malformed token, bad
// signature, expiry, missing subject. Callers must not distinguish between
// causes, so all of them collapse into this one error.
var ErrInvalidCredential = errors.New("invalid session credential")

// DefaultTTL is the fixed session lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// Claims is the JWT payload; the user id travels in the registered subject.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with a server-wide HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer from the JWT_SECRET environment variable.
func NewIssuer() *Issuer {
	return &Issuer{
		secret: []byte(env.GetEnv("JWT_SECRET", "change-this-in-production")),
		ttl:    DefaultTTL,
	}
}

// NewIssuerWithTTL is used by tests that need short or negative lifetimes.
func NewIssuerWithTTL(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token for the given user id with the fixed expiry
// window.
func (i *Issuer) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry and returns the subject user id.
// Whether that user still exists is the caller's concern.
func (i *Issuer) Validate(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("%w: invalid claims", ErrInvalidCredential)
	}
	if claims.Subject == "" {
		return 0, fmt.Errorf("%w: missing subject", ErrInvalidCredential)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed subject", ErrInvalidCredential)
	}
	return uint(id), nil
}
