package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEtVerifyPassword(t *testing.T) {
	hash, err := HashPassword("tajine-2024")
	require.NoError(t, err)
	require.True(t, IsArgon2Hash(hash))

	ok, err := VerifyPassword("tajine-2024", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("mauvais", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordHashInvalide(t *testing.T) {
	_, err := VerifyPassword("x", "pas-un-hash")
	assert.Error(t, err)
}

func TestVerifyAdminPasswordEnClair(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret-boutique")

	assert.True(t, VerifyAdminPassword("secret-boutique"))
	assert.False(t, VerifyAdminPassword("autre"))
}

func TestVerifyAdminPasswordHashe(t *testing.T) {
	hash, err := HashPassword("secret-boutique")
	require.NoError(t, err)
	t.Setenv("ADMIN_PASSWORD", hash)

	assert.True(t, VerifyAdminPassword("secret-boutique"))
	assert.False(t, VerifyAdminPassword("autre"))
}

func TestVerifyAdminPasswordNonConfigure(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	assert.False(t, VerifyAdminPassword(""))
}

func TestGenerateAdminJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	token, err := GenerateAdminJWT()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
