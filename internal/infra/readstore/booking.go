package readstore

import (
	"context"
	"time"

	"rentdesk/internal/infra"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/pgconv"
	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const findBookingViewSQL = `
SELECT b.id, b.vehicle_id, v.plate, v.model,
       b.client_name, b.client_email,
       b.delivery, b.collection, b.hour_tolerance,
       b.daily_rate_cents, b.price_cents, b.status, b.note,
       b.created_at, b.updated_at
FROM bookings b
JOIN vehicles v ON v.id = b.vehicle_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view := &queries.BookingView{}
	var (
		delivery   pgtype.Timestamptz
		collection pgtype.Timestamptz
		note       pgtype.Text
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, findBookingViewSQL, id).Scan(
		&view.ID, &view.VehicleID, &view.VehiclePlate, &view.VehicleModel,
		&view.ClientName, &view.ClientEmail,
		&delivery, &collection, &view.HourTolerance,
		&view.DailyRateCents, &view.PriceCents, &view.Status, &note,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view.Delivery = pgconv.TimeFromPgtype(delivery)
	view.Collection = pgconv.TimeFromPgtype(collection)
	view.Note = pgconv.StringPtrFromPgtype(note)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return view, nil
}

const findBookingsFirstPageSQL = `
SELECT b.id, v.plate, b.client_name,
       b.delivery, b.collection, b.hour_tolerance,
       b.price_cents, b.status, b.created_at
FROM bookings b
JOIN vehicles v ON v.id = b.vehicle_id
ORDER BY b.created_at DESC, b.id DESC
LIMIT $1`

func (r *BookingReadStore) FindFirstPage(ctx context.Context, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, findBookingsFirstPageSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings first page", err)
	}
	return scanBookingListItems(rows)
}

const findBookingsKeysetSQL = `
SELECT b.id, v.plate, b.client_name,
       b.delivery, b.collection, b.hour_tolerance,
       b.price_cents, b.status, b.created_at
FROM bookings b
JOIN vehicles v ON v.id = b.vehicle_id
WHERE (b.created_at, b.id) < ($1, $2)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $3`

func (r *BookingReadStore) FindKeyset(ctx context.Context, after queries.Cursor, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, findBookingsKeysetSQL, pgconv.TimeToPgtype(after.CreatedAt), after.ID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings keyset", err)
	}
	return scanBookingListItems(rows)
}

func scanBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		item := &queries.BookingListItem{}
		var (
			delivery   pgtype.Timestamptz
			collection pgtype.Timestamptz
			createdAt  pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.VehiclePlate, &item.ClientName,
			&delivery, &collection, &item.HourTolerance,
			&item.PriceCents, &item.Status, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.Delivery = pgconv.TimeFromPgtype(delivery)
		item.Collection = pgconv.TimeFromPgtype(collection)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list items", err)
	}
	return result, nil
}

// FindOverdueUnreminded lists delivered bookings past collection that have no
// overdue-reminder job yet.
const findOverdueUnremindedSQL = `
SELECT b.id
FROM bookings b
WHERE b.status = 'delivered'
  AND b.collection < $1
  AND NOT EXISTS (
      SELECT 1 FROM notification_jobs j
      WHERE j.topic = 'booking_overdue'
        AND j.payload ->> 'booking_id' = b.id::text
  )
ORDER BY b.collection
LIMIT $2`

func (r *BookingReadStore) FindOverdueUnreminded(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, findOverdueUnremindedSQL, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overdue bookings", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overdue booking ID", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate overdue bookings", err)
	}
	return ids, nil
}

const findBookingDuesSQL = `
SELECT price_cents, deposit_cents FROM bookings WHERE id = $1`

// FindDues returns the amounts the payment reconciliation measures against.
func (r *BookingReadStore) FindDues(ctx context.Context, bookingID uuid.UUID) (int64, int64, error) {
	var rentalDue, depositDue int64
	err := r.db.QueryRow(ctx, findBookingDuesSQL, bookingID).Scan(&rentalDue, &depositDue)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, 0, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return 0, 0, infra.WrapRepoErr("failed to find booking dues", err)
	}
	return rentalDue, depositDue, nil
}
