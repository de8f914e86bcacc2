package readstore

import (
	"context"

	"rentdesk/internal/infra"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/pgconv"
	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(db db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: db}
}

const findVehicleViewSQL = `
SELECT id, plate, model, daily_rate_cents, is_active, created_at, updated_at
FROM vehicles
WHERE id = $1`

func (r *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	view := &queries.VehicleView{}
	var createdAt, updatedAt pgtype.Timestamptz

	err := r.db.QueryRow(ctx, findVehicleViewSQL, id).Scan(
		&view.ID, &view.Plate, &view.Model, &view.DailyRateCents, &view.IsActive,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}

	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return view, nil
}

const findAllVehiclesSQL = `
SELECT id, plate, model, daily_rate_cents, is_active, created_at, updated_at
FROM vehicles
ORDER BY plate`

func (r *VehicleReadStore) FindAll(ctx context.Context) ([]*queries.VehicleView, error) {
	rows, err := r.db.Query(ctx, findAllVehiclesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles", err)
	}
	defer rows.Close()

	var result []*queries.VehicleView
	for rows.Next() {
		view := &queries.VehicleView{}
		var createdAt, updatedAt pgtype.Timestamptz
		if err := rows.Scan(
			&view.ID, &view.Plate, &view.Model, &view.DailyRateCents, &view.IsActive,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle", err)
		}
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicles", err)
	}
	return result, nil
}
