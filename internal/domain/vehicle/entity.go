package vehicle

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyPlate        = errors.New("registration plate must not be empty")
	ErrEmptyModel        = errors.New("vehicle model must not be empty")
	ErrNegativeDailyRate = errors.New("daily rate cannot be negative")
)

// Vehicle is a fleet car. DailyRateCents is the default rate copied onto new
// bookings; changing it never reprices existing bookings.
type Vehicle struct {
	id             uuid.UUID
	plate          string
	model          string
	dailyRateCents int64
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewVehicle(plate, model string, dailyRateCents int64) (*Vehicle, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return nil, ErrEmptyPlate
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, ErrEmptyModel
	}
	if dailyRateCents < 0 {
		return nil, ErrNegativeDailyRate
	}

	return &Vehicle{
		id:             uuid.New(),
		plate:          plate,
		model:          model,
		dailyRateCents: dailyRateCents,
		isActive:       true,
	}, nil
}

func Reconstruct(id uuid.UUID, plate, model string, dailyRateCents int64, isActive bool, createdAt, updatedAt time.Time) *Vehicle {
	return &Vehicle{
		id:             id,
		plate:          plate,
		model:          model,
		dailyRateCents: dailyRateCents,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (v *Vehicle) ID() uuid.UUID         { return v.id }
func (v *Vehicle) Plate() string         { return v.plate }
func (v *Vehicle) Model() string         { return v.model }
func (v *Vehicle) DailyRateCents() int64 { return v.dailyRateCents }
func (v *Vehicle) IsActive() bool        { return v.isActive }
func (v *Vehicle) CreatedAt() time.Time  { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time  { return v.updatedAt }
