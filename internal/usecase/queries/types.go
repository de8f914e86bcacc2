package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                uuid.UUID `json:"id"`
	VehicleID         uuid.UUID `json:"vehicle_id"`
	VehiclePlate      string    `json:"vehicle_plate"`
	VehicleModel      string    `json:"vehicle_model"`
	ClientName        string    `json:"client_name"`
	ClientEmail       string    `json:"client_email"`
	Delivery          time.Time `json:"delivery"`
	Collection        time.Time `json:"collection"`
	HourTolerance     int32     `json:"hour_tolerance"`
	DailyRateCents    int64     `json:"daily_rate_cents"`
	PriceCents        int64     `json:"price_cents"`
	Status            string    `json:"status"`
	Note              *string   `json:"note,omitempty"`
	BilledDays        int       `json:"billed_days"`
	ExactHours        float64   `json:"exact_hours"`
	ExceedsTolerance  bool      `json:"exceeds_tolerance"`
	FormattedDuration string    `json:"formatted_duration"`
	FormattedTotal    string    `json:"formatted_total"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	VehiclePlate  string    `json:"vehicle_plate"`
	ClientName    string    `json:"client_name"`
	Delivery      time.Time `json:"delivery"`
	Collection    time.Time `json:"collection"`
	HourTolerance int32     `json:"hour_tolerance"`
	PriceCents    int64     `json:"price_cents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type VehicleView struct {
	ID             uuid.UUID `json:"id"`
	Plate          string    `json:"plate"`
	Model          string    `json:"model"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PaymentView struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	Kind        string    `json:"kind"`
	Intent      string    `json:"intent"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	Reference   *string   `json:"reference,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaymentStatusView struct {
	BookingID              uuid.UUID `json:"booking_id"`
	RentalDueCents         int64     `json:"rental_due_cents"`
	RentalPaidCents        int64     `json:"rental_paid_cents"`
	RentalOutstandingCents int64     `json:"rental_outstanding_cents"`
	RentalSettled          bool      `json:"rental_settled"`
	RentalOverpaid         bool      `json:"rental_overpaid"`
	DepositState           string    `json:"deposit_state"`
	DepositShortfallCents  int64     `json:"deposit_shortfall_cents"`
}

type InvoiceLineView struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitCents   int64  `json:"unit_cents"`
	AmountCents int64  `json:"amount_cents"`
}

type InvoiceView struct {
	ID         uuid.UUID         `json:"id"`
	BookingID  uuid.UUID         `json:"booking_id"`
	Number     string            `json:"number"`
	Status     string            `json:"status"`
	Lines      []InvoiceLineView `json:"lines"`
	TotalCents int64             `json:"total_cents"`
	Memo       string            `json:"memo"`
	IssuedAt   time.Time         `json:"issued_at"`
}

type MonthlyRevenueView struct {
	Year         int   `json:"year"`
	Month        int   `json:"month"`
	InvoiceCount int64 `json:"invoice_count"`
	TotalCents   int64 `json:"total_cents"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
