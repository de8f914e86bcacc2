package repository

import (
	"context"

	"rentdesk/internal/domain/vehicle"
	"rentdesk/internal/infra"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/pgconv"
	"rentdesk/internal/usecase/commands"

	"github.com/google/uuid"
)

type VehicleRepository struct {
	db db.DBTX
}

func NewVehicleRepository(db db.DBTX) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const createVehicleSQL = `
INSERT INTO vehicles (id, plate, model, daily_rate_cents, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

func (r *VehicleRepository) Create(ctx context.Context, tx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createVehicleSQL,
		v.ID(),
		v.Plate(),
		v.Model(),
		v.DailyRateCents(),
		v.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgError("failed to create vehicle", err)
	}
	return id, nil
}

const findVehicleByIDSQL = `
SELECT id, plate, model, daily_rate_cents, is_active
FROM vehicles
WHERE id = $1`

func (r *VehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.VehicleSnapshot, error) {
	var snap commands.VehicleSnapshot
	err := r.db.QueryRow(ctx, findVehicleByIDSQL, id).Scan(
		&snap.ID,
		&snap.Plate,
		&snap.Model,
		&snap.DailyRateCents,
		&snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}
	return &snap, nil
}
