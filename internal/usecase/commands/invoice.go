package commands

import (
	"context"
	"log/slog"

	"rentdesk/internal/domain/invoice"
	"rentdesk/internal/infra"
	"rentdesk/internal/pkg/clock"
	"rentdesk/internal/pkg/errs"
	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrBookingNotBillable = errs.New("booking is not billable yet")
	ErrInvoiceNotFound    = errs.New("invoice not found")
	ErrInvoiceVoided      = errs.New("invoice is already voided")
)

type IssueInvoiceResult struct {
	Invoice    *queries.InvoiceView
	IsReplayed bool
}

type InvoiceCommands interface {
	IssueInvoice(ctx context.Context, bookingID uuid.UUID) (*IssueInvoiceResult, error)
	VoidInvoice(ctx context.Context, invoiceID uuid.UUID) error
}

type invoiceUseCaseImpl struct {
	invoiceRepo    InvoiceRepository
	bookingRepo    BookingRepository
	invoiceQueries queries.InvoiceQueries
	db             *pgxpool.Pool
	clock          clock.Clock
}

func NewInvoiceUseCase(
	invoiceRepo InvoiceRepository,
	bookingRepo BookingRepository,
	invoiceQueries queries.InvoiceQueries,
	db *pgxpool.Pool,
	clock clock.Clock,
) InvoiceCommands {
	return &invoiceUseCaseImpl{
		invoiceRepo:    invoiceRepo,
		bookingRepo:    bookingRepo,
		invoiceQueries: invoiceQueries,
		db:             db,
		clock:          clock,
	}
}

// IssueInvoice is idempotent per booking: while an issued invoice exists for
// the booking, reissuing returns it instead of numbering a second one.
func (i *invoiceUseCaseImpl) IssueInvoice(ctx context.Context, bookingID uuid.UUID) (*IssueInvoiceResult, error) {
	existingID, err := i.invoiceRepo.FindIssuedIDByBookingID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existingID != nil {
		view, err := i.invoiceQueries.GetByID(ctx, *existingID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return &IssueInvoiceResult{Invoice: view, IsReplayed: true}, nil
	}

	bookingEntity, err := i.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !bookingEntity.Billable() {
		return nil, ErrBookingNotBillable
	}

	quote, err := bookingEntity.Quote()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	issuedAt := i.clock.Now()

	tx, err := i.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	sequence, err := i.invoiceRepo.NextSequence(ctx, tx, issuedAt.Year())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	number, err := invoice.NumberFor(issuedAt.Year(), sequence)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	invoiceEntity, err := invoice.IssueForBooking(
		bookingID,
		number,
		quote,
		bookingEntity.DailyRate().Cents(),
		issuedAt,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	invoiceID, err := i.invoiceRepo.Create(ctx, tx, invoiceEntity)
	if err != nil {
		// A concurrent issue can win between the existence check and this
		// insert; the partial unique index on issued invoices rejects ours.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return i.replayIssuedInvoice(ctx, bookingID)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}

	view, err := i.invoiceQueries.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &IssueInvoiceResult{Invoice: view, IsReplayed: false}, nil
}

func (i *invoiceUseCaseImpl) replayIssuedInvoice(ctx context.Context, bookingID uuid.UUID) (*IssueInvoiceResult, error) {
	existingID, err := i.invoiceRepo.FindIssuedIDByBookingID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existingID == nil {
		return nil, errs.Mark(errs.New("issued invoice missing after duplicate key"), ErrDatabaseOperationFailed)
	}
	view, err := i.invoiceQueries.GetByID(ctx, *existingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &IssueInvoiceResult{Invoice: view, IsReplayed: true}, nil
}

func (i *invoiceUseCaseImpl) VoidInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	invoiceEntity, err := i.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrInvoiceNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := invoiceEntity.Void(); err != nil {
		return errs.Mark(err, ErrInvoiceVoided)
	}

	if err := i.invoiceRepo.UpdateStatus(ctx, i.db, invoiceID, invoiceEntity.Status()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
