package repository

import (
	"context"

	"rentdesk/internal/domain/payment"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(db db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const createPaymentSQL = `
INSERT INTO payments (id, booking_id, kind, intent, status, amount_cents, reference, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

func (r *PaymentRepository) Create(ctx context.Context, tx db.DBTX, rec payment.Record) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createPaymentSQL,
		rec.ID,
		rec.BookingID,
		string(rec.Kind),
		string(rec.Intent),
		string(rec.Status),
		rec.AmountCents,
		rec.Reference,
		pgconv.TimeToPgtype(rec.CreatedAt),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgError("failed to create payment record", err)
	}
	return id, nil
}
