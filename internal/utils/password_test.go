package utils_test

import (
	"testing"

	"github.com/festra/event_registration_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := utils.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	// bcrypt salts, so hashing twice never yields the same string.
	again, err := utils.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, utils.CheckPasswordHash("s3cret", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
	assert.False(t, utils.CheckPasswordHash("", hash))
}

func TestCheckPasswordHash_EmptyHashNeverMatches(t *testing.T) {
	// Federated-only accounts store no password hash.
	assert.False(t, utils.CheckPasswordHash("anything", ""))
	assert.False(t, utils.CheckPasswordHash("", ""))
}
