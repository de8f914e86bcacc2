package request

type CreateVehicleRequest struct {
	Plate          string `json:"plate" binding:"required"`
	Model          string `json:"model" binding:"required"`
	DailyRateCents int64  `json:"daily_rate_cents" binding:"required,gt=0"`
}
