package payment

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindRental  Kind = "rental"
	KindDeposit Kind = "deposit"
)

func (k Kind) IsValid() bool {
	return k == KindRental || k == KindDeposit
}

type Intent string

const (
	IntentCharge        Intent = "charge"
	IntentRefund        Intent = "refund"
	IntentAuthorization Intent = "authorization"
	IntentRelease       Intent = "release"
)

func (i Intent) IsValid() bool {
	switch i {
	case IntentCharge, IntentRefund, IntentAuthorization, IntentRelease:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}

// Record is one payment event against a booking, as reported by the gateway
// or entered by back-office staff. Records are append-only.
type Record struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	Kind        Kind
	Intent      Intent
	Status      Status
	AmountCents int64
	Reference   *string
	CreatedAt   time.Time
}
