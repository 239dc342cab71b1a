package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordEncoder(t *testing.T) {
	encoder := NewPasswordEncoder(bcrypt.MinCost)

	t.Run("Matches", func(t *testing.T) {
		for _, secret := range []string{"password", "s3nh@", "a", "correct horse battery staple"} {
			digest, err := encoder.Hash(secret)
			require.NoError(t, err)

			assert.NotEqual(t, secret, digest)
			assert.True(t, encoder.Matches(secret, digest))
			assert.False(t, encoder.Matches("wrong", digest))
		}
	})

	t.Run("Salted", func(t *testing.T) {
		first, err := encoder.Hash("password")
		require.NoError(t, err)
		second, err := encoder.Hash("password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("MalformedDigest", func(t *testing.T) {
		assert.False(t, encoder.Matches("password", ""))
		assert.False(t, encoder.Matches("password", "not-a-bcrypt-hash"))
	})

	t.Run("TooLong", func(t *testing.T) {
		_, err := encoder.Hash(strings.Repeat("x", 73))
		assert.Error(t, err)
	})
}

func TestNewPasswordEncoder_Cost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordEncoder(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordEncoder(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewPasswordEncoder(12).cost)
}
