package commands

import (
	"context"

	"rentdesk/internal/domain/vehicle"
	reqdto "rentdesk/internal/handler/dto/request"
	"rentdesk/internal/infra"
	"rentdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicatePlate = errs.New("vehicle plate already registered")

type VehicleCommands interface {
	CreateVehicle(ctx context.Context, req reqdto.CreateVehicleRequest) (uuid.UUID, error)
}

type vehicleUseCaseImpl struct {
	vehicleRepo VehicleRepository
	db          *pgxpool.Pool
}

func NewVehicleUseCase(vehicleRepo VehicleRepository, db *pgxpool.Pool) VehicleCommands {
	return &vehicleUseCaseImpl{
		vehicleRepo: vehicleRepo,
		db:          db,
	}
}

func (v *vehicleUseCaseImpl) CreateVehicle(ctx context.Context, req reqdto.CreateVehicleRequest) (uuid.UUID, error) {
	vehicleEntity, err := vehicle.NewVehicle(req.Plate, req.Model, req.DailyRateCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	id, err := v.vehicleRepo.Create(ctx, v.db, vehicleEntity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrDuplicatePlate
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return id, nil
}
