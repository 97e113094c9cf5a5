package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	got, ok := TokenExpiry(signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry(signed(t, jwt.MapClaims{"id": "u1"}))
	assert.False(t, ok, "no exp claim")

	_, ok = TokenExpiry("opaque-token")
	assert.False(t, ok)

	_, ok = TokenExpiry("")
	assert.False(t, ok)
}
