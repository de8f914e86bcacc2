package commands

import (
	"context"
	"time"

	"rentdesk/internal/domain/booking"
	"rentdesk/internal/domain/invoice"
	"rentdesk/internal/domain/payment"
	"rentdesk/internal/domain/vehicle"
	"rentdesk/internal/infra/db"

	"github.com/google/uuid"
)

// VehicleSnapshot is the minimal read the write side needs for validation.
type VehicleSnapshot struct {
	ID             uuid.UUID
	Plate          string
	Model          string
	DailyRateCents int64
	IsActive       bool
}

type IdempotencyRecord struct {
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error
}

type VehicleRepository interface {
	Create(ctx context.Context, tx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleSnapshot, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx db.DBTX, rec payment.Record) (uuid.UUID, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, tx db.DBTX, inv *invoice.Invoice) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
	FindIssuedIDByBookingID(ctx context.Context, bookingID uuid.UUID) (*uuid.UUID, error)
	NextSequence(ctx context.Context, tx db.DBTX, year int) (int64, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status invoice.Status) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseBodyHash string, resultBookingID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}
