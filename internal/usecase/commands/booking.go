package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"rentdesk/internal/domain/booking"
	reqdto "rentdesk/internal/handler/dto/request"
	"rentdesk/internal/infra"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/clock"
	"rentdesk/internal/pkg/errs"
	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrVehicleNotFound         = errs.New("vehicle not found")
	ErrVehicleInactive         = errs.New("vehicle is not active")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInvalidWindow           = errs.New("invalid rental window")
	ErrDuplicateBooking        = errs.New("duplicate booking request")
	ErrBookingConflict         = errs.New("booking conflict")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	Reschedule(ctx context.Context, bookingID uuid.UUID, req reqdto.RescheduleBookingRequest) (*queries.BookingView, error)
	MarkDelivered(ctx context.Context, bookingID uuid.UUID) error
	MarkReturned(ctx context.Context, bookingID uuid.UUID) error
	Cancel(ctx context.Context, bookingID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	bookingRepo      BookingRepository
	vehicleRepo      VehicleRepository
	idempotencyRepo  IdempotencyRepository
	notificationRepo NotificationRepository
	bookingQueries   queries.BookingQueries
	db               *pgxpool.Pool
	clock            clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	vehicleRepo VehicleRepository,
	idempotencyRepo IdempotencyRepository,
	notificationRepo NotificationRepository,
	bookingQueries queries.BookingQueries,
	db *pgxpool.Pool,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		bookingRepo:      bookingRepo,
		vehicleRepo:      vehicleRepo,
		idempotencyRepo:  idempotencyRepo,
		notificationRepo: notificationRepo,
		bookingQueries:   bookingQueries,
		db:               db,
		clock:            clock,
	}
}

func (b *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := b.calculateRequestHash(req)
	expiresAt := b.clock.Now().Add(24 * time.Hour)

	existingResult, err := b.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if existingResult != nil {
		return &CreateBookingResult{
			Booking:    existingResult,
			IsReplayed: true,
		}, nil
	}

	bookingView, err := b.createNewBooking(ctx, req, userID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{
		Booking:    bookingView,
		IsReplayed: false,
	}, nil
}

func (b *bookingUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	if err := b.idempotencyRepo.TryInsert(ctx, idempotencyKey, userID, "POST /bookings", requestHash, expiresAt); err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	existing, err := b.idempotencyRepo.Get(ctx, idempotencyKey, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID != nil {
			return b.bookingQueries.GetByID(ctx, *existing.ResultBookingID)
		}
		return nil, errs.New("completed request missing result booking ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateBooking
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (b *bookingUseCaseImpl) createNewBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID, idempotencyKey uuid.UUID,
) (*queries.BookingView, error) {
	vehicleSnap, err := b.validateAndGetVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	domainData, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	bookingEntity, err := booking.NewBooking(
		vehicleSnap.ID,
		domainData.Contact,
		domainData.Window,
		req.Tolerance(),
		booking.NewMoney(vehicleSnap.DailyRateCents),
		booking.NewMoney(req.Deposit()),
		domainData.Note,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return b.executeBookingTransaction(ctx, bookingEntity, idempotencyKey, userID)
}

func (b *bookingUseCaseImpl) executeBookingTransaction(
	ctx context.Context,
	bookingEntity *booking.Booking,
	idempotencyKey, userID uuid.UUID,
) (*queries.BookingView, error) {
	tx, err := b.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	bookingID, err := b.bookingRepo.Create(ctx, tx, bookingEntity)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrBookingConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if notificationErr := b.enqueueBookingNotification(ctx, tx, bookingID, "booking_created"); notificationErr != nil {
		return nil, errs.Mark(notificationErr, ErrDatabaseOperationFailed)
	}

	// Placeholder for response hash until we read the full data
	tempHash := b.calculateIDHash(bookingID)
	err = b.idempotencyRepo.UpdateStatusCompleted(ctx, tx, idempotencyKey, userID, tempHash, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}

	// Read-after-write: get the complete booking view from the read store
	bookingView, err := b.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return bookingView, nil
}

func (b *bookingUseCaseImpl) Reschedule(
	ctx context.Context,
	bookingID uuid.UUID,
	req reqdto.RescheduleBookingRequest,
) (*queries.BookingView, error) {
	bookingEntity, err := b.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	window, err := booking.NewWindow(req.Delivery, req.Collection)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	if err := bookingEntity.Reschedule(window, req.Tolerance(bookingEntity.HourTolerance())); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := b.bookingRepo.Update(ctx, b.db, bookingEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return b.bookingQueries.GetByID(ctx, bookingID)
}

func (b *bookingUseCaseImpl) MarkDelivered(ctx context.Context, bookingID uuid.UUID) error {
	return b.transition(ctx, bookingID, (*booking.Booking).MarkDelivered, "booking_delivered")
}

func (b *bookingUseCaseImpl) MarkReturned(ctx context.Context, bookingID uuid.UUID) error {
	return b.transition(ctx, bookingID, (*booking.Booking).MarkReturned, "booking_returned")
}

func (b *bookingUseCaseImpl) Cancel(ctx context.Context, bookingID uuid.UUID) error {
	return b.transition(ctx, bookingID, (*booking.Booking).Cancel, "booking_canceled")
}

// transition loads the aggregate, applies the status change, and persists the
// update and the notification job in one transaction.
func (b *bookingUseCaseImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	apply func(*booking.Booking) error,
	topic string,
) error {
	bookingEntity, err := b.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := apply(bookingEntity); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := b.bookingRepo.Update(ctx, tx, bookingEntity); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := b.enqueueBookingNotification(ctx, tx, bookingID, topic); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}
	return nil
}

func (b *bookingUseCaseImpl) findBooking(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	bookingEntity, err := b.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return bookingEntity, nil
}

func (b *bookingUseCaseImpl) validateAndGetVehicle(ctx context.Context, vehicleID uuid.UUID) (*VehicleSnapshot, error) {
	vehicleSnap, err := b.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrVehicleNotFound)
	}

	if !vehicleSnap.IsActive {
		return nil, ErrVehicleInactive
	}
	return vehicleSnap, nil
}

func (b *bookingUseCaseImpl) enqueueBookingNotification(
	ctx context.Context,
	tx db.DBTX,
	bookingID uuid.UUID,
	topic string,
) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return err
	}

	return b.notificationRepo.CreateJob(ctx, tx, "email", topic, payload, b.clock.Now())
}

func (b *bookingUseCaseImpl) calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (b *bookingUseCaseImpl) calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
