package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("2b1f8c1e-9a57-4f35-8d17-9f6f6f0a2f11", "secret")
	require.NoError(t, err)

	id, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "2b1f8c1e-9a57-4f35-8d17-9f6f6f0a2f11", id)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-id", "secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", "secret")
	assert.Error(t, err)
}
