package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, salt, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Len(t, hash, 32)
	assert.Len(t, salt, 16)

	assert.True(t, VerifyPassword("correct horse battery staple", hash, salt))
	assert.False(t, VerifyPassword("correct horse battery stapler", hash, salt))
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	hash1, salt1, err := HashPassword("same password")
	require.NoError(t, err)
	hash2, salt2, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword_EmptyCredential(t *testing.T) {
	// Provider-created identities carry no password material and must
	// never verify.
	assert.False(t, VerifyPassword("anything", nil, nil))
	assert.False(t, VerifyPassword("", nil, nil))
}

func TestNewSessionToken_Unique(t *testing.T) {
	tok1, err := NewSessionToken()
	require.NoError(t, err)
	tok2, err := NewSessionToken()
	require.NoError(t, err)

	assert.NotEmpty(t, tok1)
	assert.NotEqual(t, tok1, tok2)
	// 32 random bytes in unpadded base64url.
	assert.Len(t, tok1, 43)
}
