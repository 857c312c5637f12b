package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPasswordLegacyPlaintext(t *testing.T) {
	assert.True(t, VerifyPassword("123", "123"))
	assert.False(t, VerifyPassword("123", "124"))
	assert.False(t, VerifyPassword("123", ""))
}

func TestVerifyPasswordBcrypt(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "other"))
	// the hash itself is not a valid credential
	assert.False(t, VerifyPassword(hash, hash))
}
