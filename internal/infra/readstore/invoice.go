package readstore

import (
	"context"

	"rentdesk/internal/infra"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/pgconv"
	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type InvoiceReadStore struct {
	db db.DBTX
}

func NewInvoiceReadStore(db db.DBTX) *InvoiceReadStore {
	return &InvoiceReadStore{db: db}
}

const findInvoiceViewSQL = `
SELECT id, booking_id, number, status, total_cents, memo, issued_at
FROM invoices
WHERE id = $1`

func (r *InvoiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.InvoiceView, error) {
	view := &queries.InvoiceView{}
	var issuedAt pgtype.Timestamptz

	err := r.db.QueryRow(ctx, findInvoiceViewSQL, id).Scan(
		&view.ID, &view.BookingID, &view.Number, &view.Status,
		&view.TotalCents, &view.Memo, &issuedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("invoice not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find invoice by ID", err)
	}
	view.IssuedAt = pgconv.TimeFromPgtype(issuedAt)

	lines, err := r.findLines(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Lines = lines
	return view, nil
}

const findInvoicesByBookingSQL = `
SELECT id, booking_id, number, status, total_cents, memo, issued_at
FROM invoices
WHERE booking_id = $1
ORDER BY issued_at DESC`

func (r *InvoiceReadStore) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*queries.InvoiceView, error) {
	rows, err := r.db.Query(ctx, findInvoicesByBookingSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list invoices for booking", err)
	}
	return r.scanInvoices(ctx, rows)
}

const findRecentInvoicesSQL = `
SELECT id, booking_id, number, status, total_cents, memo, issued_at
FROM invoices
ORDER BY issued_at DESC
LIMIT $1`

func (r *InvoiceReadStore) FindRecent(ctx context.Context, limit int32) ([]*queries.InvoiceView, error) {
	rows, err := r.db.Query(ctx, findRecentInvoicesSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list recent invoices", err)
	}
	return r.scanInvoices(ctx, rows)
}

func (r *InvoiceReadStore) scanInvoices(ctx context.Context, rows pgx.Rows) ([]*queries.InvoiceView, error) {
	defer rows.Close()

	var result []*queries.InvoiceView
	for rows.Next() {
		view := &queries.InvoiceView{}
		var issuedAt pgtype.Timestamptz
		if err := rows.Scan(
			&view.ID, &view.BookingID, &view.Number, &view.Status,
			&view.TotalCents, &view.Memo, &issuedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan invoice", err)
		}
		view.IssuedAt = pgconv.TimeFromPgtype(issuedAt)
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate invoices", err)
	}

	// Line reads after the row iterator closes; one query per invoice keeps
	// the list endpoint simple and the pages are small.
	for _, view := range result {
		lines, err := r.findLines(ctx, view.ID)
		if err != nil {
			return nil, err
		}
		view.Lines = lines
	}
	return result, nil
}

const findInvoiceLinesSQL = `
SELECT description, quantity, unit_cents, amount_cents
FROM invoice_lines
WHERE invoice_id = $1
ORDER BY position`

func (r *InvoiceReadStore) findLines(ctx context.Context, invoiceID uuid.UUID) ([]queries.InvoiceLineView, error) {
	rows, err := r.db.Query(ctx, findInvoiceLinesSQL, invoiceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find invoice lines", err)
	}
	defer rows.Close()

	var lines []queries.InvoiceLineView
	for rows.Next() {
		var line queries.InvoiceLineView
		if err := rows.Scan(&line.Description, &line.Quantity, &line.UnitCents, &line.AmountCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan invoice line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate invoice lines", err)
	}
	return lines, nil
}
