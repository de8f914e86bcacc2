package queries

import (
	"context"

	"github.com/google/uuid"
)

type InvoiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*InvoiceView, error)
	FindRecent(ctx context.Context, limit int32) ([]*InvoiceView, error)
}

type InvoiceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*InvoiceView, error)
	ListRecent(ctx context.Context, limit int) ([]*InvoiceView, error)
}

const defaultInvoicePageSize = 50

type invoiceQueriesImpl struct {
	readStore InvoiceReadStore
}

func NewInvoiceQueries(readStore InvoiceReadStore) InvoiceQueries {
	return &invoiceQueriesImpl{readStore: readStore}
}

func (q *invoiceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error) {
	return q.readStore.FindByID(ctx, id)
}

func (q *invoiceQueriesImpl) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*InvoiceView, error) {
	return q.readStore.FindByBookingID(ctx, bookingID)
}

func (q *invoiceQueriesImpl) ListRecent(ctx context.Context, limit int) ([]*InvoiceView, error) {
	if limit <= 0 || limit > defaultInvoicePageSize {
		limit = defaultInvoicePageSize
	}
	return q.readStore.FindRecent(ctx, int32(limit))
}
