//go:build unit || e2e

package builder

import (
	"time"

	"rentdesk/internal/domain/booking"
	reqdto "rentdesk/internal/handler/dto/request"
	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	VehicleID     uuid.UUID
	ClientName    string
	ClientEmail   string
	Delivery      time.Time
	Collection    time.Time
	HourTolerance *int
	DepositCents  *int64
	Note          *string
}

func NewBookingBuilder() *BookingBuilder {
	delivery := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		VehicleID:   uuid.New(),
		ClientName:  "Ada Wong",
		ClientEmail: "ada@example.com",
		Delivery:    delivery,
		Collection:  delivery.Add(72 * time.Hour),
	}
}

func (b *BookingBuilder) WithWindow(delivery, collection time.Time) *BookingBuilder {
	b.Delivery = delivery
	b.Collection = collection
	return b
}

func (b *BookingBuilder) WithTolerance(hours int) *BookingBuilder {
	b.HourTolerance = &hours
	return b
}

func (b *BookingBuilder) WithVehicle(id uuid.UUID) *BookingBuilder {
	b.VehicleID = id
	return b
}

func (b *BookingBuilder) WithDeposit(cents int64) *BookingBuilder {
	b.DepositCents = &cents
	return b
}

func (b *BookingBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		VehicleID:     b.VehicleID,
		ClientName:    b.ClientName,
		ClientEmail:   b.ClientEmail,
		Delivery:      b.Delivery,
		Collection:    b.Collection,
		HourTolerance: b.HourTolerance,
		DepositCents:  b.DepositCents,
		Note:          b.Note,
	}
}

func (b *BookingBuilder) BuildReadModel() *queries.BookingView {
	now := time.Now().UTC()
	tolerance := booking.DefaultHourTolerance
	if b.HourTolerance != nil {
		tolerance = *b.HourTolerance
	}
	quote, _ := booking.QuoteDuration(b.Delivery, b.Collection, tolerance)
	return &queries.BookingView{
		ID:                uuid.New(),
		VehicleID:         b.VehicleID,
		VehiclePlate:      "AB-123-CD",
		VehicleModel:      "Renault Clio",
		ClientName:        b.ClientName,
		ClientEmail:       b.ClientEmail,
		Delivery:          b.Delivery,
		Collection:        b.Collection,
		HourTolerance:     int32(tolerance),
		DailyRateCents:    4500,
		PriceCents:        int64(quote.BilledDays) * 4500,
		Status:            "booked",
		BilledDays:        quote.BilledDays,
		ExactHours:        quote.ExactHours,
		ExceedsTolerance:  quote.ExceedsTolerance,
		FormattedDuration: quote.FormattedDuration,
		FormattedTotal:    quote.FormattedTotal,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
