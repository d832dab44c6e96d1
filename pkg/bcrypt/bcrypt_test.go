package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret-password"))
	assert.Error(t, ComparePassword(hash, "wrong-password"))
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
