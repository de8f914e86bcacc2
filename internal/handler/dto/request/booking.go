package request

import (
	"strings"
	"time"

	"rentdesk/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	VehicleID     uuid.UUID `json:"vehicle_id" binding:"required"`
	ClientName    string    `json:"client_name" binding:"required"`
	ClientEmail   string    `json:"client_email" binding:"required,email"`
	Delivery      time.Time `json:"delivery" binding:"required"`
	Collection    time.Time `json:"collection" binding:"required"`
	HourTolerance *int      `json:"hour_tolerance,omitempty"`
	DepositCents  *int64    `json:"deposit_cents,omitempty" binding:"omitempty,gte=0"`
	Note          *string   `json:"note,omitempty"`
}

func (r CreateBookingRequest) Tolerance() int {
	if r.HourTolerance == nil {
		return booking.DefaultHourTolerance
	}
	return *r.HourTolerance
}

// Deposit returns the requested refundable deposit in cents; omitting the
// field means no deposit is held for the booking.
func (r CreateBookingRequest) Deposit() int64 {
	if r.DepositCents == nil {
		return 0
	}
	return *r.DepositCents
}

type BookingDomainData struct {
	Contact booking.Contact
	Window  booking.Window
	Note    booking.Note
}

func (r CreateBookingRequest) ToDomain() (*BookingDomainData, error) {
	contact, err := booking.NewContact(r.ClientName, r.ClientEmail)
	if err != nil {
		return nil, err
	}

	window, err := booking.NewWindow(r.Delivery, r.Collection)
	if err != nil {
		return nil, err
	}

	note := booking.NewNote("")
	if r.Note != nil {
		note = booking.NewNote(strings.TrimSpace(*r.Note))
	}

	return &BookingDomainData{
		Contact: contact,
		Window:  window,
		Note:    note,
	}, nil
}

type RescheduleBookingRequest struct {
	Delivery      time.Time `json:"delivery" binding:"required"`
	Collection    time.Time `json:"collection" binding:"required"`
	HourTolerance *int      `json:"hour_tolerance,omitempty"`
}

func (r RescheduleBookingRequest) Tolerance(current int) int {
	if r.HourTolerance == nil {
		return current
	}
	return *r.HourTolerance
}

type QuoteRequest struct {
	Delivery      time.Time `json:"delivery" binding:"required"`
	Collection    time.Time `json:"collection" binding:"required"`
	HourTolerance *int      `json:"hour_tolerance,omitempty"`
}

func (r QuoteRequest) Tolerance() int {
	if r.HourTolerance == nil {
		return booking.DefaultHourTolerance
	}
	return *r.HourTolerance
}
