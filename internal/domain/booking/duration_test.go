//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rentdesk/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestQuoteDuration(t *testing.T) {
	type testCase struct {
		name       string
		delivery   string
		collection string
		tolerance  int
		want       booking.DurationQuote
	}

	cases := []testCase{
		{
			name:       "exact 24h window bills one day",
			delivery:   "2024-01-01T10:00:00Z",
			collection: "2024-01-02T10:00:00Z",
			tolerance:  1,
			want: booking.DurationQuote{
				BilledDays:        1,
				ExactHours:        24,
				ExceedsTolerance:  false,
				FormattedDuration: "1 day",
				FormattedTotal:    "1 day",
			},
		},
		{
			name:       "90 minute remainder over 1h tolerance bills extra day",
			delivery:   "2024-01-01T10:00:00Z",
			collection: "2024-01-02T11:30:00Z",
			tolerance:  1,
			want: booking.DurationQuote{
				BilledDays:        2,
				ExactHours:        25.5,
				ExceedsTolerance:  true,
				FormattedDuration: "1 day 1 hour 30 minutes",
				FormattedTotal:    "2 days",
			},
		},
		{
			name:       "identical instants bill one day",
			delivery:   "2024-01-01T10:00:00Z",
			collection: "2024-01-01T10:00:00Z",
			tolerance:  1,
			want: booking.DurationQuote{
				BilledDays:        1,
				ExactHours:        0,
				ExceedsTolerance:  false,
				FormattedDuration: "0 hours",
				FormattedTotal:    "1 day",
			},
		},
		{
			name:       "remainder within a wider tolerance is forgiven",
			delivery:   "2024-01-01T00:00:00Z",
			collection: "2024-01-03T01:00:00Z",
			tolerance:  2,
			want: booking.DurationQuote{
				BilledDays:        2,
				ExactHours:        49,
				ExceedsTolerance:  false,
				FormattedDuration: "2 days 1 hour",
				FormattedTotal:    "2 days",
			},
		},
		{
			name:       "sub-day rental bills one day",
			delivery:   "2024-01-01T08:00:00Z",
			collection: "2024-01-01T13:00:00Z",
			tolerance:  1,
			want: booking.DurationQuote{
				BilledDays:        1,
				ExactHours:        5,
				ExceedsTolerance:  true,
				FormattedDuration: "5 hours",
				FormattedTotal:    "1 day",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := booking.QuoteDuration(ts(t, tc.delivery), ts(t, tc.collection), tc.tolerance)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("quote mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("inverted window fails", func(t *testing.T) {
		_, err := booking.QuoteDuration(ts(t, "2024-01-02T10:00:00Z"), ts(t, "2024-01-01T10:00:00Z"), 1)
		require.ErrorIs(t, err, booking.ErrInvalidWindow)
	})
}

func TestQuoteDurationToleranceBoundary(t *testing.T) {
	delivery := ts(t, "2024-01-01T10:00:00Z")

	t.Run("remainder exactly equal to tolerance does not trigger an extra day", func(t *testing.T) {
		// 2 full days plus exactly 3 hours, tolerance 3.
		collection := delivery.Add(2*24*time.Hour + 3*time.Hour)
		got, err := booking.QuoteDuration(delivery, collection, 3)
		require.NoError(t, err)
		assert.False(t, got.ExceedsTolerance)
		assert.Equal(t, 2, got.BilledDays)
	})

	t.Run("remainder just over tolerance triggers an extra day", func(t *testing.T) {
		// 3h + 36s = 3.01 hours against tolerance 3.
		collection := delivery.Add(2*24*time.Hour + 3*time.Hour + 36*time.Second)
		got, err := booking.QuoteDuration(delivery, collection, 3)
		require.NoError(t, err)
		assert.True(t, got.ExceedsTolerance)
		assert.Equal(t, 3, got.BilledDays)
	})

	t.Run("fractional remainder is compared un-truncated", func(t *testing.T) {
		// 1.5h remainder vs tolerance 1: truncating to 1h would wrongly forgive it.
		collection := delivery.Add(24*time.Hour + 90*time.Minute)
		got, err := booking.QuoteDuration(delivery, collection, 1)
		require.NoError(t, err)
		assert.True(t, got.ExceedsTolerance)
		assert.Equal(t, 2, got.BilledDays)
	})
}

func TestQuoteDurationToleranceClamping(t *testing.T) {
	delivery := ts(t, "2024-01-01T10:00:00Z")
	// 1 full day plus 10 hours.
	collection := delivery.Add(34 * time.Hour)

	t.Run("tolerance above 12 is clamped to 12", func(t *testing.T) {
		got, err := booking.QuoteDuration(delivery, collection, 99)
		require.NoError(t, err)
		assert.False(t, got.ExceedsTolerance, "10h remainder within clamped 12h tolerance")
		assert.Equal(t, 1, got.BilledDays)
	})

	t.Run("tolerance at or below zero is clamped to 1", func(t *testing.T) {
		got, err := booking.QuoteDuration(delivery, collection, -5)
		require.NoError(t, err)
		assert.True(t, got.ExceedsTolerance)
		assert.Equal(t, 2, got.BilledDays)
	})
}

func TestQuoteDurationProperties(t *testing.T) {
	delivery := ts(t, "2024-03-01T09:00:00Z")

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		collection := delivery.Add(50 * time.Hour)
		first, err := booking.QuoteDuration(delivery, collection, 2)
		require.NoError(t, err)
		second, err := booking.QuoteDuration(delivery, collection, 2)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("billed days never decrease as collection moves later", func(t *testing.T) {
		prev := 0
		for minutes := 0; minutes <= 5*24*60; minutes += 17 {
			collection := delivery.Add(time.Duration(minutes) * time.Minute)
			got, err := booking.QuoteDuration(delivery, collection, 2)
			require.NoError(t, err)
			require.GreaterOrEqual(t, got.BilledDays, prev,
				"billed days decreased at +%dm", minutes)
			require.GreaterOrEqual(t, got.BilledDays, 1)
			prev = got.BilledDays
		}
	})
}

func TestFormatBilledDays(t *testing.T) {
	assert.Equal(t, "1 day", booking.FormatBilledDays(1))
	assert.Equal(t, "2 days", booking.FormatBilledDays(2))
	assert.Equal(t, "30 days", booking.FormatBilledDays(30))
}
