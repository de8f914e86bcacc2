package queries

import (
	"context"

	"rentdesk/internal/domain/payment"

	"github.com/google/uuid"
)

type PaymentReadStore interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*PaymentView, error)
	FindRecordsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]payment.Record, error)
}

type BookingDuesReadStore interface {
	FindDues(ctx context.Context, bookingID uuid.UUID) (rentalDueCents, depositDueCents int64, err error)
}

type PaymentQueries interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*PaymentView, error)
	Status(ctx context.Context, bookingID uuid.UUID) (*PaymentStatusView, error)
}

type paymentQueriesImpl struct {
	payments PaymentReadStore
	dues     BookingDuesReadStore
}

func NewPaymentQueries(payments PaymentReadStore, dues BookingDuesReadStore) PaymentQueries {
	return &paymentQueriesImpl{
		payments: payments,
		dues:     dues,
	}
}

func (q *paymentQueriesImpl) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*PaymentView, error) {
	return q.payments.FindByBookingID(ctx, bookingID)
}

// Status reconciles the booking's payment records into the derived view the
// client payment panel renders. Nothing here is persisted.
func (q *paymentQueriesImpl) Status(ctx context.Context, bookingID uuid.UUID) (*PaymentStatusView, error) {
	rentalDue, depositDue, err := q.dues.FindDues(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	records, err := q.payments.FindRecordsByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	state := payment.Reconcile(records, rentalDue, depositDue)

	return &PaymentStatusView{
		BookingID:              bookingID,
		RentalDueCents:         rentalDue,
		RentalPaidCents:        state.RentalPaidCents,
		RentalOutstandingCents: state.RentalOutstandingCents,
		RentalSettled:          state.RentalSettled,
		RentalOverpaid:         state.RentalOverpaid,
		DepositState:           string(state.Deposit),
		DepositShortfallCents:  state.DepositShortfallCents,
	}, nil
}
