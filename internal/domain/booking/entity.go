package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTolerance   = errors.New("hour tolerance out of range")
	ErrNegativeDailyRate  = errors.New("daily rate cannot be negative")
	ErrNegativeDeposit    = errors.New("deposit cannot be negative")
	ErrBookingCanceled    = errors.New("booking is already canceled")
	ErrBookingNotBooked   = errors.New("booking is no longer reschedulable")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
	ErrBookingNotBillable = errors.New("booking is not in a billable state")
)

// Booking is the rental aggregate. Price is always dailyRate × billed days
// from QuoteDuration; it is recomputed on every reschedule so the stored
// price can never drift from the window.
type Booking struct {
	id            uuid.UUID
	vehicleID     uuid.UUID
	contact       Contact
	window        Window
	hourTolerance int
	dailyRate     Money
	deposit       Money
	price         Money
	status        Status
	note          Note
	createdAt     time.Time
	updatedAt     time.Time
}

func NewBooking(
	vehicleID uuid.UUID,
	contact Contact,
	window Window,
	hourTolerance int,
	dailyRate Money,
	deposit Money,
	note Note,
) (*Booking, error) {
	if hourTolerance == 0 {
		hourTolerance = DefaultHourTolerance
	}
	if hourTolerance < MinHourTolerance || hourTolerance > MaxHourTolerance {
		return nil, ErrInvalidTolerance
	}
	if dailyRate.Cents() < 0 {
		return nil, ErrNegativeDailyRate
	}
	if deposit.Cents() < 0 {
		return nil, ErrNegativeDeposit
	}

	quote, err := window.Quote(hourTolerance)
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:            uuid.New(),
		vehicleID:     vehicleID,
		contact:       contact,
		window:        window,
		hourTolerance: hourTolerance,
		dailyRate:     dailyRate,
		deposit:       deposit,
		price:         dailyRate.MulDays(quote.BilledDays),
		status:        StatusBooked,
		note:          note,
	}, nil
}

func ReconstructBooking(
	id, vehicleID uuid.UUID,
	contact Contact,
	window Window,
	hourTolerance int,
	dailyRate, deposit, price Money,
	status Status,
	note Note,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		vehicleID:     vehicleID,
		contact:       contact,
		window:        window,
		hourTolerance: hourTolerance,
		dailyRate:     dailyRate,
		deposit:       deposit,
		price:         price,
		status:        status,
		note:          note,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Reschedule replaces the window and tolerance and reprices. Only allowed
// before the vehicle has gone out.
func (b *Booking) Reschedule(window Window, hourTolerance int) error {
	if b.status == StatusCanceled {
		return ErrBookingCanceled
	}
	if b.status != StatusBooked {
		return ErrBookingNotBooked
	}
	if hourTolerance < MinHourTolerance || hourTolerance > MaxHourTolerance {
		return ErrInvalidTolerance
	}

	quote, err := window.Quote(hourTolerance)
	if err != nil {
		return err
	}

	b.window = window
	b.hourTolerance = hourTolerance
	b.price = b.dailyRate.MulDays(quote.BilledDays)
	return nil
}

func (b *Booking) MarkDelivered() error {
	if b.status != StatusBooked {
		return ErrInvalidTransition
	}
	b.status = StatusDelivered
	return nil
}

func (b *Booking) MarkReturned() error {
	if b.status != StatusDelivered {
		return ErrInvalidTransition
	}
	b.status = StatusReturned
	return nil
}

func (b *Booking) Cancel() error {
	if b.status == StatusCanceled {
		return ErrBookingCanceled
	}
	if b.status.IsTerminal() {
		return ErrInvalidTransition
	}
	b.status = StatusCanceled
	return nil
}

// Billable reports whether an invoice may be issued for the booking.
func (b *Booking) Billable() bool {
	return b.status == StatusDelivered || b.status == StatusReturned
}

// Quote recomputes the duration quote for the current window and tolerance.
func (b *Booking) Quote() (DurationQuote, error) {
	return b.window.Quote(b.hourTolerance)
}

// Overdue reports whether the vehicle is still out past its collection instant.
func (b *Booking) Overdue(now time.Time) bool {
	return b.status == StatusDelivered && now.After(b.window.Collection())
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) VehicleID() uuid.UUID { return b.vehicleID }
func (b *Booking) Contact() Contact     { return b.contact }
func (b *Booking) Window() Window       { return b.window }
func (b *Booking) HourTolerance() int   { return b.hourTolerance }
func (b *Booking) DailyRate() Money     { return b.dailyRate }
func (b *Booking) Deposit() Money       { return b.deposit }
func (b *Booking) Price() Money         { return b.price }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Note() Note           { return b.note }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
