package response

import (
	"time"

	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type InvoiceLineResponse struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitCents   int64  `json:"unitCents"`
	AmountCents int64  `json:"amountCents"`
}

type InvoiceResponse struct {
	ID         uuid.UUID             `json:"id"`
	BookingID  uuid.UUID             `json:"bookingId"`
	Number     string                `json:"number"`
	Status     string                `json:"status"`
	Lines      []InvoiceLineResponse `json:"lines"`
	TotalCents int64                 `json:"totalCents"`
	Memo       string                `json:"memo"`
	IssuedAt   time.Time             `json:"issuedAt"`
}

func FromInvoiceView(rm *queries.InvoiceView) *InvoiceResponse {
	resp := &InvoiceResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}

func FromInvoiceViews(rms []*queries.InvoiceView) []*InvoiceResponse {
	result := make([]*InvoiceResponse, len(rms))
	for i, rm := range rms {
		result[i] = FromInvoiceView(rm)
	}
	return result
}
