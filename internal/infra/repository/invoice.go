package repository

import (
	"context"

	"rentdesk/internal/domain/invoice"
	"rentdesk/internal/infra"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type InvoiceRepository struct {
	db db.DBTX
}

func NewInvoiceRepository(db db.DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

const createInvoiceSQL = `
INSERT INTO invoices (id, booking_id, number, status, total_cents, memo, issued_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

const createInvoiceLineSQL = `
INSERT INTO invoice_lines (invoice_id, position, description, quantity, unit_cents, amount_cents)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *InvoiceRepository) Create(ctx context.Context, tx db.DBTX, inv *invoice.Invoice) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createInvoiceSQL,
		inv.ID(),
		inv.BookingID(),
		inv.Number(),
		inv.Status().String(),
		inv.TotalCents(),
		inv.Memo(),
		pgconv.TimeToPgtype(inv.IssuedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgError("failed to create invoice", err)
	}

	for pos, line := range inv.Lines() {
		_, err := tx.Exec(ctx, createInvoiceLineSQL,
			id,
			int32(pos),
			line.Description,
			line.Quantity.String(),
			line.UnitCents,
			line.AmountCents,
		)
		if err != nil {
			return uuid.Nil, wrapPgError("failed to create invoice line", err)
		}
	}

	return id, nil
}

const findInvoiceByIDSQL = `
SELECT id, booking_id, number, status, total_cents, memo, issued_at
FROM invoices
WHERE id = $1`

const findInvoiceLinesSQL = `
SELECT description, quantity, unit_cents, amount_cents
FROM invoice_lines
WHERE invoice_id = $1
ORDER BY position`

func (r *InvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	var (
		invoiceID  uuid.UUID
		bookingID  uuid.UUID
		number     string
		status     string
		totalCents int64
		memo       string
		issuedAt   pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, findInvoiceByIDSQL, id).Scan(
		&invoiceID, &bookingID, &number, &status, &totalCents, &memo, &issuedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("invoice not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find invoice by ID", err)
	}

	rows, err := r.db.Query(ctx, findInvoiceLinesSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find invoice lines", err)
	}
	defer rows.Close()

	var lines []invoice.Line
	for rows.Next() {
		var (
			description string
			quantity    string
			unitCents   int64
			amountCents int64
		)
		if err := rows.Scan(&description, &quantity, &unitCents, &amountCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan invoice line", err)
		}
		qty, err := decimal.NewFromString(quantity)
		if err != nil {
			return nil, infra.WrapRepoErr("stored invoice quantity is invalid", err)
		}
		lines = append(lines, invoice.Line{
			Description: description,
			Quantity:    qty,
			UnitCents:   unitCents,
			AmountCents: amountCents,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate invoice lines", err)
	}

	return invoice.Reconstruct(
		invoiceID,
		bookingID,
		number,
		invoice.Status(status),
		lines,
		totalCents,
		memo,
		pgconv.TimeFromPgtype(issuedAt),
	), nil
}

const findIssuedInvoiceIDSQL = `
SELECT id
FROM invoices
WHERE booking_id = $1 AND status = 'issued'
ORDER BY issued_at DESC
LIMIT 1`

func (r *InvoiceRepository) FindIssuedIDByBookingID(ctx context.Context, bookingID uuid.UUID) (*uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, findIssuedInvoiceIDSQL, bookingID).Scan(&id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find issued invoice", err)
	}
	return &id, nil
}

// NextSequence allocates the next per-year invoice number under the enclosing
// transaction; the upsert takes a row lock so concurrent issuers serialize.
const nextInvoiceSequenceSQL = `
INSERT INTO invoice_sequences (year, last_value)
VALUES ($1, 1)
ON CONFLICT (year) DO UPDATE SET last_value = invoice_sequences.last_value + 1
RETURNING last_value`

func (r *InvoiceRepository) NextSequence(ctx context.Context, tx db.DBTX, year int) (int64, error) {
	var seq int64
	if err := tx.QueryRow(ctx, nextInvoiceSequenceSQL, int32(year)).Scan(&seq); err != nil {
		return 0, infra.WrapRepoErr("failed to allocate invoice sequence", err)
	}
	return seq, nil
}

const updateInvoiceStatusSQL = `
UPDATE invoices SET status = $2 WHERE id = $1`

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status invoice.Status) error {
	tag, err := tx.Exec(ctx, updateInvoiceStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update invoice status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("invoice not found", nil, infra.KindNotFound)
	}
	return nil
}
