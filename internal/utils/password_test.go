package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1-password")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1-password", hash)
	assert.True(t, CheckPasswordHash("secret1-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("secret1-password")
	require.NoError(t, err)
	second, err := HashPassword("secret1-password")
	require.NoError(t, err)

	// Different salts, different stored values, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash("secret1-password", first))
	assert.True(t, CheckPasswordHash("secret1-password", second))
}
