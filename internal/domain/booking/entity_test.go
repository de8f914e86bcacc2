//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rentdesk/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T, tolerance int) *booking.Booking {
	t.Helper()

	contact, err := booking.NewContact("Jane Renter", "jane@example.com")
	require.NoError(t, err)

	window, err := booking.NewWindow(
		time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	b, err := booking.NewBooking(uuid.New(), contact, window, tolerance, booking.NewMoney(5000), booking.NewMoney(50000), booking.NewNote(""))
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("prices as daily rate times billed days", func(t *testing.T) {
		b := newTestBooking(t, 1)
		assert.Equal(t, int64(10000), b.Price().Cents(), "2 billed days at 5000 cents")
		assert.Equal(t, booking.StatusBooked, b.Status())
	})

	t.Run("carries the requested deposit", func(t *testing.T) {
		b := newTestBooking(t, 1)
		assert.Equal(t, int64(50000), b.Deposit().Cents())
	})

	t.Run("zero tolerance defaults to 1", func(t *testing.T) {
		b := newTestBooking(t, 0)
		assert.Equal(t, 1, b.HourTolerance())
	})

	t.Run("out-of-range tolerance is rejected", func(t *testing.T) {
		contact, err := booking.NewContact("Jane Renter", "jane@example.com")
		require.NoError(t, err)
		window, err := booking.NewWindow(
			time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		_, err = booking.NewBooking(uuid.New(), contact, window, 13, booking.NewMoney(5000), booking.NewMoney(0), booking.NewNote(""))
		assert.ErrorIs(t, err, booking.ErrInvalidTolerance)
	})

	t.Run("negative daily rate is rejected", func(t *testing.T) {
		contact, err := booking.NewContact("Jane Renter", "jane@example.com")
		require.NoError(t, err)
		window, err := booking.NewWindow(
			time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		_, err = booking.NewBooking(uuid.New(), contact, window, 1, booking.NewMoney(-1), booking.NewMoney(0), booking.NewNote(""))
		assert.ErrorIs(t, err, booking.ErrNegativeDailyRate)
	})

	t.Run("negative deposit is rejected", func(t *testing.T) {
		contact, err := booking.NewContact("Jane Renter", "jane@example.com")
		require.NoError(t, err)
		window, err := booking.NewWindow(
			time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		_, err = booking.NewBooking(uuid.New(), contact, window, 1, booking.NewMoney(5000), booking.NewMoney(-1), booking.NewNote(""))
		assert.ErrorIs(t, err, booking.ErrNegativeDeposit)
	})

	t.Run("inverted window is rejected at construction", func(t *testing.T) {
		_, err := booking.NewWindow(
			time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		)
		assert.ErrorIs(t, err, booking.ErrInvalidWindow)
	})
}

func TestBookingReschedule(t *testing.T) {
	t.Run("reprices against the new window", func(t *testing.T) {
		b := newTestBooking(t, 1)

		// 3 days plus a 2h remainder over the 1h tolerance: 4 billed days.
		window, err := booking.NewWindow(
			time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 4, 11, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		require.NoError(t, b.Reschedule(window, 1))
		assert.Equal(t, int64(20000), b.Price().Cents())
	})

	t.Run("widening tolerance forgives the remainder", func(t *testing.T) {
		b := newTestBooking(t, 1)

		window, err := booking.NewWindow(
			time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 4, 11, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		require.NoError(t, b.Reschedule(window, 2))
		assert.Equal(t, int64(15000), b.Price().Cents())
	})

	t.Run("rejected after delivery", func(t *testing.T) {
		b := newTestBooking(t, 1)
		require.NoError(t, b.MarkDelivered())

		err := b.Reschedule(b.Window(), 2)
		assert.ErrorIs(t, err, booking.ErrBookingNotBooked)
	})

	t.Run("rejected after cancellation", func(t *testing.T) {
		b := newTestBooking(t, 1)
		require.NoError(t, b.Cancel())

		err := b.Reschedule(b.Window(), 2)
		assert.ErrorIs(t, err, booking.ErrBookingCanceled)
	})
}

func TestBookingTransitions(t *testing.T) {
	t.Run("booked to delivered to returned", func(t *testing.T) {
		b := newTestBooking(t, 1)
		require.NoError(t, b.MarkDelivered())
		assert.Equal(t, booking.StatusDelivered, b.Status())
		assert.True(t, b.Billable())

		require.NoError(t, b.MarkReturned())
		assert.Equal(t, booking.StatusReturned, b.Status())
		assert.True(t, b.Billable())
	})

	t.Run("cannot return before delivery", func(t *testing.T) {
		b := newTestBooking(t, 1)
		assert.ErrorIs(t, b.MarkReturned(), booking.ErrInvalidTransition)
	})

	t.Run("cannot cancel a returned booking", func(t *testing.T) {
		b := newTestBooking(t, 1)
		require.NoError(t, b.MarkDelivered())
		require.NoError(t, b.MarkReturned())
		assert.ErrorIs(t, b.Cancel(), booking.ErrInvalidTransition)
	})

	t.Run("double cancel is reported", func(t *testing.T) {
		b := newTestBooking(t, 1)
		require.NoError(t, b.Cancel())
		assert.ErrorIs(t, b.Cancel(), booking.ErrBookingCanceled)
	})
}

func TestBookingOverdue(t *testing.T) {
	b := newTestBooking(t, 1)
	collection := b.Window().Collection()

	assert.False(t, b.Overdue(collection.Add(time.Hour)), "not overdue before delivery")

	require.NoError(t, b.MarkDelivered())
	assert.False(t, b.Overdue(collection))
	assert.True(t, b.Overdue(collection.Add(time.Minute)))

	require.NoError(t, b.MarkReturned())
	assert.False(t, b.Overdue(collection.Add(time.Hour)))
}
