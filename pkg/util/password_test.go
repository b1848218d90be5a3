package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Abcdefg1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdefg1", hash)

	assert.True(t, CheckPassword("Abcdefg1", hash))
	assert.False(t, CheckPassword("Wrong1234", hash))
}

func TestCheckPassword_MalformedHashIsJustFalse(t *testing.T) {
	// A corrupt hash must not be distinguishable from a mismatch.
	assert.False(t, CheckPassword("Abcdefg1", "not-a-bcrypt-hash"))
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	h1, err := HashPassword("Abcdefg1", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("Abcdefg1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
