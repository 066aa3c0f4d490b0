// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is the JWT issuer claim.
const Issuer = "spark"

// MinSecretLength is the minimum accepted signing secret length.
const MinSecretLength = 32

// ErrInvalidToken is returned for tokens that fail validation.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are the session token claims. Subject holds the session ID.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenManager issues and validates session tokens.
type TokenManager struct {
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
	generated bool
}

// NewTokenManager creates a TokenManager. An empty secret is replaced by a
// random one, which invalidates tokens on restart; Generated reports it.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	m := &TokenManager{ttl: ttl, now: time.Now}
	if m.ttl <= 0 {
		m.ttl = 30 * 24 * time.Hour
	}

	if secret == "" {
		buf := make([]byte, MinSecretLength)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		m.generated = true
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d characters, got %d", MinSecretLength, len(secret))
	}
	m.secret = []byte(secret)
	return m, nil
}

// Generated reports whether the secret was generated at startup.
func (m *TokenManager) Generated() bool { return m.generated }

// TTL returns the token lifetime.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for sessionID and returns it with its expiry.
func (m *TokenManager) Issue(sessionID string) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   sessionID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// Validate verifies the token and returns the session ID it carries.
func (m *TokenManager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: subject is not a session id", ErrInvalidToken)
	}
	return claims.Subject, nil
}
