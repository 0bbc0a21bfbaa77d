package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTUtil_RoundTrip(t *testing.T) {
	j := NewJWTUtil("test-secret", 1)

	token, err := j.GenerateToken(42, "Anitha", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := j.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Anitha", claims.Name)
	assert.Equal(t, "customer", claims.Role)
}

func TestJWTUtil_WrongSecret(t *testing.T) {
	j := NewJWTUtil("test-secret", 1)
	other := NewJWTUtil("other-secret", 1)

	token, err := j.GenerateToken(1, "x", "admin")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTUtil_ExpiredToken(t *testing.T) {
	// 过期时间为负，签发即过期
	j := NewJWTUtil("test-secret", -1)

	token, err := j.GenerateToken(1, "x", "customer")
	require.NoError(t, err)

	_, err = j.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTUtil_GarbageToken(t *testing.T) {
	j := NewJWTUtil("test-secret", 1)
	_, err := j.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAdminTxnRefs(t *testing.T) {
	assert.True(t, strings.HasPrefix(AdminConfirmTxnRef(7), "ADMINCONF"))
	assert.True(t, strings.HasPrefix(AdminRejectTxnRef(7), "ADMINREJ"))
	assert.True(t, strings.HasSuffix(AdminConfirmTxnRef(7), "7"))
}
