package storefront

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims tokenClaims) string {
	t.Helper()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unknown-to-client"))
	require.NoError(t, err)

	return tok
}

func TestParseClaims(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := issued.Add(time.Hour)

	tok := signToken(t, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: "admin@example.com",
		Role:  "admin",
	})

	c, err := ParseClaims(tok)
	require.NoError(t, err)

	assert.Equal(t, "u1", c.Subject)
	assert.Equal(t, "admin@example.com", c.Email)
	assert.Equal(t, "admin", c.Role)
	assert.True(t, issued.Equal(c.IssuedAt))
	assert.True(t, expires.Equal(c.ExpiresAt))

	assert.False(t, c.Expired(issued))
	assert.Equal(t, time.Hour, c.ExpiresIn(issued))
	assert.True(t, c.Expired(expires))
	assert.Zero(t, c.ExpiresIn(expires.Add(time.Minute)))
}

func TestParseClaims_ExpiredTokenStillParses(t *testing.T) {
	tok := signToken(t, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	c, err := ParseClaims(tok)
	require.NoError(t, err)
	assert.True(t, c.Expired(time.Now()))
}

func TestParseClaims_NoExpiry(t *testing.T) {
	c, err := ParseClaims(signToken(t, tokenClaims{Role: "customer"}))
	require.NoError(t, err)

	assert.False(t, c.Expired(time.Now()))
	assert.Zero(t, c.ExpiresIn(time.Now()))
}

func TestParseClaims_Opaque(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing token")
}
