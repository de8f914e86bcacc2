package invoice

import (
	"errors"
	"fmt"
	"time"

	"rentdesk/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyLines      = errors.New("invoice must have at least one line")
	ErrAlreadyVoided   = errors.New("invoice is already voided")
	ErrInvalidSequence = errors.New("invoice sequence must be positive")
)

type Status string

const (
	StatusIssued Status = "issued"
	StatusVoided Status = "voided"
)

func (s Status) String() string {
	return string(s)
}

// Line is a single invoice position. Amount is computed with decimal
// arithmetic and stored in cents; quantities may be fractional in future
// credit lines, so Quantity stays decimal.
type Line struct {
	Description string
	Quantity    decimal.Decimal
	UnitCents   int64
	AmountCents int64
}

func NewLine(description string, quantity decimal.Decimal, unitCents int64) Line {
	amount := quantity.Mul(decimal.NewFromInt(unitCents)).Round(0).IntPart()
	return Line{
		Description: description,
		Quantity:    quantity,
		UnitCents:   unitCents,
		AmountCents: amount,
	}
}

// Invoice is immutable once issued: corrections go through Void and reissue.
type Invoice struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	number     string
	status     Status
	lines      []Line
	totalCents int64
	memo       string
	issuedAt   time.Time
}

// NumberFor builds the sequential display number, e.g. "INV-2024-0042".
func NumberFor(year int, sequence int64) (string, error) {
	if sequence <= 0 {
		return "", ErrInvalidSequence
	}
	return fmt.Sprintf("INV-%d-%04d", year, sequence), nil
}

// IssueForBooking builds the rental invoice from the booking's duration
// quote: one line billing the rounded-up day count at the daily rate, with
// the exact elapsed duration kept as the memo so the proration is auditable.
func IssueForBooking(
	bookingID uuid.UUID,
	number string,
	quote booking.DurationQuote,
	dailyRateCents int64,
	issuedAt time.Time,
) (*Invoice, error) {
	description := fmt.Sprintf("Car rental (%s)", quote.FormattedTotal)
	if quote.ExceedsTolerance {
		description += " (return past tolerance, extra day billed)"
	}

	lines := []Line{
		NewLine(description, decimal.NewFromInt(int64(quote.BilledDays)), dailyRateCents),
	}

	return New(bookingID, number, lines, "Rental duration: "+quote.FormattedDuration, issuedAt)
}

func New(bookingID uuid.UUID, number string, lines []Line, memo string, issuedAt time.Time) (*Invoice, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyLines
	}

	var total int64
	for _, l := range lines {
		total += l.AmountCents
	}

	return &Invoice{
		id:         uuid.New(),
		bookingID:  bookingID,
		number:     number,
		status:     StatusIssued,
		lines:      lines,
		totalCents: total,
		memo:       memo,
		issuedAt:   issuedAt,
	}, nil
}

func Reconstruct(
	id, bookingID uuid.UUID,
	number string,
	status Status,
	lines []Line,
	totalCents int64,
	memo string,
	issuedAt time.Time,
) *Invoice {
	return &Invoice{
		id:         id,
		bookingID:  bookingID,
		number:     number,
		status:     status,
		lines:      lines,
		totalCents: totalCents,
		memo:       memo,
		issuedAt:   issuedAt,
	}
}

func (i *Invoice) Void() error {
	if i.status == StatusVoided {
		return ErrAlreadyVoided
	}
	i.status = StatusVoided
	return nil
}

// Total returns the invoice total in currency units, e.g. 150.00.
func (i *Invoice) Total() decimal.Decimal {
	return decimal.NewFromInt(i.totalCents).Div(decimal.NewFromInt(100))
}

func (i *Invoice) ID() uuid.UUID        { return i.id }
func (i *Invoice) BookingID() uuid.UUID { return i.bookingID }
func (i *Invoice) Number() string       { return i.number }
func (i *Invoice) Status() Status       { return i.status }
func (i *Invoice) Lines() []Line        { return i.lines }
func (i *Invoice) TotalCents() int64    { return i.totalCents }
func (i *Invoice) Memo() string         { return i.memo }
func (i *Invoice) IssuedAt() time.Time  { return i.issuedAt }
