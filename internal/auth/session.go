// Package auth gates the admin dashboard behind a single shared password.
//
// This is explicitly not a security-grade mechanism: there is one shared
// secret, the session token never expires, and nothing is stored server
// side. The SessionProvider interface exists so a real token scheme can be
// swapped in without touching the handlers.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the admin session token.
const CookieName = "lp_admin"

var (
	// ErrInvalidPassword is returned when the login password does not match.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidSession is returned for missing, malformed, or tampered
	// session tokens.
	ErrInvalidSession = errors.New("invalid session")
)

// SessionProvider issues and verifies admin session tokens.
type SessionProvider interface {
	Issue(password string) (string, error)
	Verify(token string) error
}

// SharedSecretProvider compares the login password against a configured
// value and issues an HS256-signed admin token. The token carries no exp
// claim: the operator stays signed in until the signing secret rotates.
type SharedSecretProvider struct {
	password []byte
	secret   []byte
}

// NewSharedSecretProvider creates a provider with the configured admin
// password and cookie signing secret.
func NewSharedSecretProvider(password, secret string) *SharedSecretProvider {
	return &SharedSecretProvider{
		password: []byte(password),
		secret:   []byte(secret),
	}
}

// Issue checks the password in constant time and returns a signed token.
func (p *SharedSecretProvider) Issue(password string) (string, error) {
	if len(p.password) == 0 {
		return "", ErrInvalidPassword
	}

	if subtle.ConstantTimeCompare([]byte(password), p.password) != 1 {
		return "", ErrInvalidPassword
	}

	claims := jwt.MapClaims{
		"admin": true,
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// Verify checks the token signature and the admin claim.
func (p *SharedSecretProvider) Verify(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidSession
	}

	if isAdmin, ok := claims["admin"].(bool); !ok || !isAdmin {
		return ErrInvalidSession
	}

	return nil
}

// Compile-time check.
var _ SessionProvider = (*SharedSecretProvider)(nil)
