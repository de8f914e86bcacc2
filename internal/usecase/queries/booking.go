package queries

import (
	"context"

	"rentdesk/internal/domain/booking"

	"github.com/google/uuid"
)

const defaultPageSize = 50

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindFirstPage(ctx context.Context, limit int32) ([]*BookingListItem, error)
	FindKeyset(ctx context.Context, after Cursor, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
}

func NewBookingQueries(readStore BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{readStore: readStore}
}

// GetByID decorates the stored row with the derived duration quote so every
// reader sees the same proration the pricing used.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AttachQuote(view); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	if limit <= 0 || limit > defaultPageSize {
		limit = defaultPageSize
	}

	var (
		rows []*BookingListItem
		err  error
	)
	if after == nil {
		rows, err = q.readStore.FindFirstPage(ctx, int32(limit))
	} else {
		rows, err = q.readStore.FindKeyset(ctx, *after, int32(limit))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) == limit {
		last := rows[len(rows)-1]
		next = &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return rows, next, nil
}

// AttachQuote fills the derived quote fields of a BookingView in place.
// Kept here so the read store stays a dumb row mapper.
func AttachQuote(view *BookingView) error {
	quote, err := booking.QuoteDuration(view.Delivery, view.Collection, int(view.HourTolerance))
	if err != nil {
		return err
	}
	view.BilledDays = quote.BilledDays
	view.ExactHours = quote.ExactHours
	view.ExceedsTolerance = quote.ExceedsTolerance
	view.FormattedDuration = quote.FormattedDuration
	view.FormattedTotal = quote.FormattedTotal
	return nil
}
