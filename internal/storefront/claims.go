package storefront

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the client can read from an access token without the
// signing key. It is informational only; the backend remains the authority.
type Claims struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ParseClaims decodes token's payload without verifying its signature.
func ParseClaims(token string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	tc := &tokenClaims{}

	if _, _, err := parser.ParseUnverified(token, tc); err != nil {
		return nil, fmt.Errorf("storefront: parsing token: %w", err)
	}

	c := &Claims{
		Subject: tc.Subject,
		Email:   tc.Email,
		Role:    tc.Role,
	}

	if tc.IssuedAt != nil {
		c.IssuedAt = tc.IssuedAt.Time
	}

	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}

	return c, nil
}

// Expired reports whether the token had expired at now. Tokens without an
// expiry never expire.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ExpiresIn returns the time left before expiry, zero once expired or when
// the token has no expiry.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt.IsZero() || c.Expired(now) {
		return 0
	}

	return c.ExpiresAt.Sub(now)
}
