//go:build unit

package queries_test

import (
	"errors"
	"testing"
	"time"

	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	original := queries.Cursor{
		CreatedAt: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		ID:        uuid.New(),
	}

	decoded, err := queries.DecodeCursor(original.Encode())
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.True(t, decoded.CreatedAt.Equal(original.CreatedAt))
	assert.Equal(t, original.ID, decoded.ID)
}

func TestDecodeCursor(t *testing.T) {
	t.Run("empty string means first page", func(t *testing.T) {
		decoded, err := queries.DecodeCursor("")
		require.NoError(t, err)
		assert.Nil(t, decoded)
	})

	t.Run("rejects non-base64 input", func(t *testing.T) {
		_, err := queries.DecodeCursor("%%bogus%%")
		assert.True(t, errors.Is(err, queries.ErrInvalidCursor))
	})

	t.Run("rejects base64 that is not a cursor", func(t *testing.T) {
		_, err := queries.DecodeCursor("bm90IGpzb24")
		assert.True(t, errors.Is(err, queries.ErrInvalidCursor))
	})
}
