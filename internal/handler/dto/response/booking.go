package response

import (
	"time"

	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                uuid.UUID `json:"id"`
	VehicleID         uuid.UUID `json:"vehicleId"`
	VehiclePlate      string    `json:"vehiclePlate"`
	VehicleModel      string    `json:"vehicleModel"`
	ClientName        string    `json:"clientName"`
	ClientEmail       string    `json:"clientEmail"`
	Delivery          time.Time `json:"delivery"`
	Collection        time.Time `json:"collection"`
	HourTolerance     int32     `json:"hourTolerance"`
	DailyRateCents    int64     `json:"dailyRateCents"`
	PriceCents        int64     `json:"priceCents"`
	Status            string    `json:"status"`
	Note              *string   `json:"note,omitempty"`
	BilledDays        int       `json:"billedDays"`
	ExactHours        float64   `json:"exactHours"`
	ExceedsTolerance  bool      `json:"exceedsTolerance"`
	FormattedDuration string    `json:"formattedDuration"`
	FormattedTotal    string    `json:"formattedTotal"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID            uuid.UUID `json:"id"`
	VehiclePlate  string    `json:"vehiclePlate"`
	ClientName    string    `json:"clientName"`
	Delivery      time.Time `json:"delivery"`
	Collection    time.Time `json:"collection"`
	HourTolerance int32     `json:"hourTolerance"`
	PriceCents    int64     `json:"priceCents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type BookingPageResponse struct {
	Items      []*BookingListResponse `json:"items"`
	NextCursor *string                `json:"nextCursor,omitempty"`
}

type QuoteResponse struct {
	BilledDays        int     `json:"billedDays"`
	ExactHours        float64 `json:"exactHours"`
	ExceedsTolerance  bool    `json:"exceedsTolerance"`
	FormattedDuration string  `json:"formattedDuration"`
	FormattedTotal    string  `json:"formattedTotal"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	resp := &BookingResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	resp := &BookingListResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}

func NewBookingPage(items []*queries.BookingListItem, next *queries.Cursor) *BookingPageResponse {
	page := &BookingPageResponse{
		Items: make([]*BookingListResponse, len(items)),
	}
	for i, item := range items {
		page.Items[i] = FromBookingListItem(item)
	}
	if next != nil {
		encoded := next.Encode()
		page.NextCursor = &encoded
	}
	return page
}
