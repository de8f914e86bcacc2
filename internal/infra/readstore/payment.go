package readstore

import (
	"context"

	"rentdesk/internal/domain/payment"
	"rentdesk/internal/infra"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/pgconv"
	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(db db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: db}
}

const findPaymentsByBookingSQL = `
SELECT id, booking_id, kind, intent, status, amount_cents, reference, created_at
FROM payments
WHERE booking_id = $1
ORDER BY created_at, id`

func (r *PaymentReadStore) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*queries.PaymentView, error) {
	rows, err := r.db.Query(ctx, findPaymentsByBookingSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}
	defer rows.Close()

	var result []*queries.PaymentView
	for rows.Next() {
		view := &queries.PaymentView{}
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(
			&view.ID, &view.BookingID, &view.Kind, &view.Intent, &view.Status,
			&view.AmountCents, &view.Reference, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment", err)
		}
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payments", err)
	}
	return result, nil
}

func (r *PaymentReadStore) FindRecordsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]payment.Record, error) {
	rows, err := r.db.Query(ctx, findPaymentsByBookingSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payment records", err)
	}
	defer rows.Close()

	var result []payment.Record
	for rows.Next() {
		var (
			rec       payment.Record
			kind      string
			intent    string
			status    string
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&rec.ID, &rec.BookingID, &kind, &intent, &status,
			&rec.AmountCents, &rec.Reference, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment record", err)
		}
		rec.Kind = payment.Kind(kind)
		rec.Intent = payment.Intent(intent)
		rec.Status = payment.Status(status)
		rec.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment records", err)
	}
	return result, nil
}
