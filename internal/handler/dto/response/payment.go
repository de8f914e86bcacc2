package response

import (
	"time"

	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PaymentResponse struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"bookingId"`
	Kind        string    `json:"kind"`
	Intent      string    `json:"intent"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amountCents"`
	Reference   *string   `json:"reference,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PaymentStatusResponse struct {
	BookingID              uuid.UUID `json:"bookingId"`
	RentalDueCents         int64     `json:"rentalDueCents"`
	RentalPaidCents        int64     `json:"rentalPaidCents"`
	RentalOutstandingCents int64     `json:"rentalOutstandingCents"`
	RentalSettled          bool      `json:"rentalSettled"`
	RentalOverpaid         bool      `json:"rentalOverpaid"`
	DepositState           string    `json:"depositState"`
	DepositShortfallCents  int64     `json:"depositShortfallCents"`
}

func FromPaymentView(rm *queries.PaymentView) *PaymentResponse {
	resp := &PaymentResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}

func FromPaymentStatusView(rm *queries.PaymentStatusView) *PaymentStatusResponse {
	resp := &PaymentStatusResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}
