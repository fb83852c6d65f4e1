// Package auth verifies the bearer tokens issued by the platform's
// identity provider. This service never mints tokens itself; it only
// validates signatures and lifetimes and extracts the caller's identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomehq/practice-api/internal/platform/logger"
)

// Claims carries the identity extracted from a validated token.
type Claims struct {
	// Email is the authenticated user's email address.
	Email string

	// Standard registered JWT claims
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// JWTVerifier validates bearer tokens and extracts the caller's identity.
type JWTVerifier interface {
	// ValidateToken validates the provided token string and extracts the
	// claims. Returns an error if validation fails (expired, invalid
	// signature, missing identity, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// hmacJWTVerifier is an implementation of JWTVerifier using HMAC-SHA signing.
type hmacJWTVerifier struct {
	signingKey []byte
	clockSkew  time.Duration
	timeFunc   func() time.Time // Injectable for testing
}

// jwtCustomClaims defines the structure of JWT claims we accept.
type jwtCustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Ensure hmacJWTVerifier implements JWTVerifier interface
var _ JWTVerifier = (*hmacJWTVerifier)(nil)

// NewJWTVerifier creates a JWT verifier using HMAC-SHA signing.
func NewJWTVerifier(secret string) (JWTVerifier, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacJWTVerifier{
		signingKey: []byte(secret),
		clockSkew:  2 * time.Minute,
		timeFunc:   time.Now,
	}, nil
}

// ValidateToken validates a bearer token and returns the claims if valid.
// The user identity comes from the "email" claim, with the subject as a
// fallback for tokens that put the address there.
func (v *hmacJWTVerifier) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := v.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid", "error", err)
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed", "error", err)
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	email := claims.Email
	if email == "" {
		email = claims.Subject
	}
	if email == "" {
		log.Debug("token validation failed: no user identity claim")
		return nil, ErrMissingUserClaim
	}

	result := &Claims{
		Email:   email,
		Subject: claims.Subject,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	return result, nil
}
