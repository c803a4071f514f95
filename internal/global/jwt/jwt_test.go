package jwt

import (
	"testing"

	"facility-work-tracker/config"

	"github.com/stretchr/testify/require"
)

func setConfig(secret string, expire int64) {
	config.Set(&config.Config{JWT: config.JWT{AccessSecret: secret, AccessExpire: expire}})
}

func TestCreateAndParseToken(t *testing.T) {
	setConfig("unit-test-secret", 3600)

	token, err := CreateToken(Payload{UserID: "u1", Email: "admin@college.edu", Name: "Admin", RoleID: 2})
	require.NoError(t, err)

	claims, ok := ParseToken(token)
	require.True(t, ok)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, 2, claims.RoleID)

	_, ok = ParseToken(token + "x")
	require.False(t, ok)

	setConfig("another-secret", 3600)
	_, ok = ParseToken(token)
	require.False(t, ok)
}

func TestExpiredToken(t *testing.T) {
	setConfig("unit-test-secret", -10)
	token, err := CreateToken(Payload{UserID: "u1"})
	require.NoError(t, err)
	_, ok := ParseToken(token)
	require.False(t, ok)
}
