//go:build unit

package password_test

import (
	"testing"

	"rentdesk/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := password.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.NoError(t, password.Verify(hash, "correct horse battery staple"))
	})

	t.Run("wrong password is a mismatch", func(t *testing.T) {
		hash, err := password.Hash("original")
		require.NoError(t, err)
		assert.ErrorIs(t, password.Verify(hash, "guess"), password.ErrMismatch)
	})

	t.Run("empty inputs are rejected", func(t *testing.T) {
		_, err := password.Hash("")
		assert.ErrorIs(t, err, password.ErrEmptyPassword)
		assert.ErrorIs(t, password.Verify("", "x"), password.ErrEmptyPassword)
		assert.ErrorIs(t, password.Verify("$2a$10$abc", ""), password.ErrEmptyPassword)
	})
}
