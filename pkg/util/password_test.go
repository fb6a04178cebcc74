package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("kitchen-rules-2024")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "kitchen-rules-2024", hash)

	// Same password hashes to different values (salted)
	hash2, err := HashPassword("kitchen-rules-2024")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("kitchen-rules-2024")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "kitchen-rules-2024"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))
	assert.False(t, VerifyPassword("not-a-hash", "kitchen-rules-2024"))
}
