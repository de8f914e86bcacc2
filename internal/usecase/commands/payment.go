package commands

import (
	"context"

	"rentdesk/internal/domain/booking"
	"rentdesk/internal/domain/payment"
	reqdto "rentdesk/internal/handler/dto/request"
	"rentdesk/internal/pkg/clock"
	"rentdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidPaymentKind   = errs.New("invalid payment kind")
	ErrInvalidPaymentIntent = errs.New("invalid payment intent")
	ErrInvalidPaymentStatus = errs.New("invalid payment status")
	ErrBookingCanceled      = errs.New("booking is canceled")
)

type PaymentCommands interface {
	RecordPayment(ctx context.Context, bookingID uuid.UUID, req reqdto.RecordPaymentRequest) (uuid.UUID, error)
}

type paymentUseCaseImpl struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	db          *pgxpool.Pool
	clock       clock.Clock
}

func NewPaymentUseCase(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	db *pgxpool.Pool,
	clock clock.Clock,
) PaymentCommands {
	return &paymentUseCaseImpl{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		db:          db,
		clock:       clock,
	}
}

// RecordPayment appends one payment record. Records are never mutated after
// insert; the derived status is recomputed from the full set on read.
func (p *paymentUseCaseImpl) RecordPayment(
	ctx context.Context,
	bookingID uuid.UUID,
	req reqdto.RecordPaymentRequest,
) (uuid.UUID, error) {
	kind := payment.Kind(req.Kind)
	if !kind.IsValid() {
		return uuid.Nil, ErrInvalidPaymentKind
	}
	intent := payment.Intent(req.Intent)
	if !intent.IsValid() {
		return uuid.Nil, ErrInvalidPaymentIntent
	}
	status := payment.Status(req.Status)
	if !status.IsValid() {
		return uuid.Nil, ErrInvalidPaymentStatus
	}

	bookingEntity, err := p.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return uuid.Nil, ErrBookingNotFound
	}
	if bookingEntity.Status() == booking.StatusCanceled {
		return uuid.Nil, ErrBookingCanceled
	}

	record := payment.Record{
		ID:          uuid.New(),
		BookingID:   bookingID,
		Kind:        kind,
		Intent:      intent,
		Status:      status,
		AmountCents: req.AmountCents,
		Reference:   req.Reference,
		CreatedAt:   p.clock.Now(),
	}

	id, err := p.paymentRepo.Create(ctx, p.db, record)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return id, nil
}
