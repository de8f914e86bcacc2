//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"rentdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("sentinel")

	t.Run("mark is visible to stdlib errors.Is", func(t *testing.T) {
		cause := errs.New("low-level failure")
		marked := errs.Mark(cause, sentinel)

		assert.True(t, errors.Is(marked, sentinel))
		assert.True(t, errors.Is(marked, cause))
	})

	t.Run("mark survives wrapping", func(t *testing.T) {
		cause := errs.New("low-level failure")
		wrapped := errs.Wrap(errs.Mark(cause, sentinel), "query bookings")

		assert.True(t, errors.Is(wrapped, sentinel))
		assert.True(t, errors.Is(wrapped, cause))
	})

	t.Run("nil err yields the mark itself", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)
		require.Error(t, err)
		assert.True(t, errors.Is(err, sentinel))
	})
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
}
