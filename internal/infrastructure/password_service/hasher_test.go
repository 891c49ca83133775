package passwordservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hashed, err := h.HashPassword("Password1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1!", hashed)

	assert.NoError(t, h.ComparePasswordHash("Password1!", hashed))
	assert.ErrorIs(t, h.ComparePasswordHash("password1!", hashed), ErrPasswordMismatch)
	assert.Error(t, h.ComparePasswordHash("Password1!", "not-bcrypt"))

	again, err := h.HashPassword("Password1!")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again, "bcrypt hashes are salted")
}

func TestHashString(t *testing.T) {
	h := NewHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	sum := h.HashString("token")
	assert.Len(t, sum, 64)
	assert.Equal(t, sum, h.HashString("token"))
	assert.Empty(t, h.HashString(""))
	assert.True(t, h.CheckHash("token", sum))
	assert.False(t, h.CheckHash("token2", sum))
}
