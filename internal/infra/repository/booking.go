package repository

import (
	"context"

	"rentdesk/internal/domain/booking"
	"rentdesk/internal/infra"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const createBookingSQL = `
INSERT INTO bookings (
    id, vehicle_id, client_name, client_email,
    delivery, collection, hour_tolerance,
    daily_rate_cents, deposit_cents, price_cents, status, note
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var note pgtype.Text
	if !b.Note().IsEmpty() {
		note = pgconv.StringToPgtype(b.Note().String())
	}

	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.VehicleID(),
		b.Contact().Name(),
		b.Contact().Email(),
		pgconv.TimeToPgtype(b.Window().Delivery()),
		pgconv.TimeToPgtype(b.Window().Collection()),
		int32(b.HourTolerance()),
		b.DailyRate().Cents(),
		b.Deposit().Cents(),
		b.Price().Cents(),
		string(b.Status()),
		note,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgError("failed to create booking", err)
	}

	return id, nil
}

const findBookingByIDSQL = `
SELECT id, vehicle_id, client_name, client_email,
       delivery, collection, hour_tolerance,
       daily_rate_cents, deposit_cents, price_cents, status, note,
       created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var (
		bookingID      uuid.UUID
		vehicleID      uuid.UUID
		clientName     string
		clientEmail    string
		delivery       pgtype.Timestamptz
		collection     pgtype.Timestamptz
		hourTolerance  int32
		dailyRateCents int64
		depositCents   int64
		priceCents     int64
		status         string
		note           pgtype.Text
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&bookingID, &vehicleID, &clientName, &clientEmail,
		&delivery, &collection, &hourTolerance,
		&dailyRateCents, &depositCents, &priceCents, &status, &note,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	contact, err := booking.NewContact(clientName, clientEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking contact is invalid", err)
	}

	window, err := booking.NewWindow(pgconv.TimeFromPgtype(delivery), pgconv.TimeFromPgtype(collection))
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking window is invalid", err)
	}

	noteValue := ""
	if p := pgconv.StringPtrFromPgtype(note); p != nil {
		noteValue = *p
	}

	return booking.ReconstructBooking(
		bookingID,
		vehicleID,
		contact,
		window,
		int(hourTolerance),
		booking.NewMoney(dailyRateCents),
		booking.NewMoney(depositCents),
		booking.NewMoney(priceCents),
		booking.Status(status),
		booking.NewNote(noteValue),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const updateBookingSQL = `
UPDATE bookings
SET delivery = $2,
    collection = $3,
    hour_tolerance = $4,
    price_cents = $5,
    status = $6,
    updated_at = now()
WHERE id = $1`

func (r *BookingRepository) Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, updateBookingSQL,
		b.ID(),
		pgconv.TimeToPgtype(b.Window().Delivery()),
		pgconv.TimeToPgtype(b.Window().Collection()),
		int32(b.HourTolerance()),
		b.Price().Cents(),
		string(b.Status()),
	)
	if err != nil {
		return wrapPgError("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
