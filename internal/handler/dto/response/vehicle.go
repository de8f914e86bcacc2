package response

import (
	"time"

	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VehicleResponse struct {
	ID             uuid.UUID `json:"id"`
	Plate          string    `json:"plate"`
	Model          string    `json:"model"`
	DailyRateCents int64     `json:"dailyRateCents"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromVehicleView(rm *queries.VehicleView) *VehicleResponse {
	resp := &VehicleResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}

func FromVehicleViews(rms []*queries.VehicleView) []*VehicleResponse {
	result := make([]*VehicleResponse, len(rms))
	for i, rm := range rms {
		result[i] = FromVehicleView(rm)
	}
	return result
}
