//go:build unit

package invoice_test

import (
	"testing"
	"time"

	"rentdesk/internal/domain/booking"
	"rentdesk/internal/domain/invoice"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberFor(t *testing.T) {
	number, err := invoice.NumberFor(2024, 42)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0042", number)

	number, err = invoice.NumberFor(2026, 12345)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-12345", number)

	_, err = invoice.NumberFor(2024, 0)
	assert.ErrorIs(t, err, invoice.ErrInvalidSequence)
}

func TestIssueForBooking(t *testing.T) {
	delivery := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	issuedAt := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

	t.Run("bills the rounded-up day count at the daily rate", func(t *testing.T) {
		quote, err := booking.QuoteDuration(delivery, delivery.Add(25*time.Hour+30*time.Minute), 1)
		require.NoError(t, err)
		require.Equal(t, 2, quote.BilledDays)

		inv, err := invoice.IssueForBooking(uuid.New(), "INV-2024-0001", quote, 7500, issuedAt)
		require.NoError(t, err)

		require.Len(t, inv.Lines(), 1)
		assert.Equal(t, int64(15000), inv.TotalCents())
		assert.True(t, inv.Total().Equal(decimal.RequireFromString("150")))
		assert.Contains(t, inv.Lines()[0].Description, "2 days")
		assert.Contains(t, inv.Lines()[0].Description, "extra day billed")
		assert.Contains(t, inv.Memo(), "1 day 1 hour 30 minutes")
		assert.Equal(t, invoice.StatusIssued, inv.Status())
	})

	t.Run("in-tolerance return bills the exact day count", func(t *testing.T) {
		quote, err := booking.QuoteDuration(delivery, delivery.Add(48*time.Hour), 1)
		require.NoError(t, err)

		inv, err := invoice.IssueForBooking(uuid.New(), "INV-2024-0002", quote, 7500, issuedAt)
		require.NoError(t, err)

		assert.Equal(t, int64(15000), inv.TotalCents())
		assert.NotContains(t, inv.Lines()[0].Description, "extra day")
	})
}

func TestInvoiceLines(t *testing.T) {
	t.Run("line amounts use decimal arithmetic", func(t *testing.T) {
		// A half-day credit: decimal math keeps 0.5 × 333 exact at rounding time.
		line := invoice.NewLine("Half-day credit", decimal.RequireFromString("0.5"), 333)
		assert.Equal(t, int64(167), line.AmountCents, "0.5 * 333 = 166.5, rounds half away from zero")
	})

	t.Run("empty invoice is rejected", func(t *testing.T) {
		_, err := invoice.New(uuid.New(), "INV-2024-0003", nil, "", time.Now())
		assert.ErrorIs(t, err, invoice.ErrEmptyLines)
	})
}

func TestInvoiceVoid(t *testing.T) {
	quote, err := booking.QuoteDuration(
		time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		1,
	)
	require.NoError(t, err)

	inv, err := invoice.IssueForBooking(uuid.New(), "INV-2024-0004", quote, 5000, time.Now())
	require.NoError(t, err)

	require.NoError(t, inv.Void())
	assert.Equal(t, invoice.StatusVoided, inv.Status())
	assert.ErrorIs(t, inv.Void(), invoice.ErrAlreadyVoided)
}
