package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer defines the interface for session token issuance and verification.
type Issuer interface {
	// Generate creates a signed session token for the given user.
	Generate(userID uint) (string, error)
	// Verify checks the token's signature and expiry and returns the
	// embedded user ID.
	Verify(token string) (uint, error)
}

// issuer implements the Issuer interface.
type issuer struct {
	secret     []byte
	expiration time.Duration
}

// NewIssuer creates a new session token issuer with the provided secret
// and expiration duration.
func NewIssuer(secret string, expiration time.Duration) Issuer {
	return &issuer{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Generate creates a signed JWT with standard claims.
func (g *issuer) Generate(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(g.expiration).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses the token, checks the HMAC signature and expiry, and
// extracts the user ID from the sub claim. Any failure means the caller
// is not logged in; it is never a server fault.
func (g *issuer) Verify(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}

	return uint(sub), nil
}
