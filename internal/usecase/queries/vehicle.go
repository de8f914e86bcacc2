package queries

import (
	"context"

	"github.com/google/uuid"
)

type VehicleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	FindAll(ctx context.Context) ([]*VehicleView, error)
}

type VehicleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	List(ctx context.Context) ([]*VehicleView, error)
}

type vehicleQueriesImpl struct {
	readStore VehicleReadStore
}

func NewVehicleQueries(readStore VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{readStore: readStore}
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	return q.readStore.FindByID(ctx, id)
}

func (q *vehicleQueriesImpl) List(ctx context.Context) ([]*VehicleView, error) {
	return q.readStore.FindAll(ctx)
}
