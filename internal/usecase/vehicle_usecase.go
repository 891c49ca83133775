package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type VehicleUseCase struct {
	vehicleRepo   contract.IVehicleRepository
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	now           func() time.Time
}

func NewVehicleUseCase(vehicleRepo contract.IVehicleRepository, uuidGenerator contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *VehicleUseCase {
	return &VehicleUseCase{
		vehicleRepo:   vehicleRepo,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		now:           time.Now,
	}
}

var _ usecasecontract.IVehicleUseCase = (*VehicleUseCase)(nil)

func (uc *VehicleUseCase) CreateVehicle(ctx context.Context, caller entity.Caller, in usecasecontract.VehicleInput) (*entity.Vehicle, error) {
	if err := Authorize(caller, "", Authenticated); err != nil {
		return nil, err
	}
	if in.VehicleType == nil {
		return nil, entity.Validationf("vehicle_type is required")
	}
	if in.Location == nil {
		return nil, entity.Validationf("location is required")
	}
	if err := validateVehicleInput(in); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	v := &entity.Vehicle{
		ID:          uc.uuidGenerator.NewUUID(),
		OwnerID:     caller.UserID,
		VehicleType: *in.VehicleType,
		Location:    *in.Location,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Brand != nil {
		v.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Model != nil {
		v.Model = strings.TrimSpace(*in.Model)
	}
	if in.RentPerHour != nil {
		v.RentPerHour = *in.RentPerHour
	}
	if in.RentPerDay != nil {
		v.RentPerDay = *in.RentPerDay
	}
	if in.PickupAddress != nil {
		v.PickupAddress = strings.TrimSpace(*in.PickupAddress)
	}
	if in.Contact != nil {
		v.Contact = strings.TrimSpace(*in.Contact)
	}
	if in.IsAvailable != nil {
		v.IsAvailable = *in.IsAvailable
	}

	if err := uc.vehicleRepo.CreateVehicle(ctx, v); err != nil {
		uc.logger.Errorf("failed to create vehicle: %v", err)
		return nil, entity.ErrInternal
	}
	return v, nil
}

func validateVehicleInput(in usecasecontract.VehicleInput) error {
	if in.VehicleType != nil && !in.VehicleType.Valid() {
		return entity.Validationf("unknown vehicle type %q", *in.VehicleType)
	}
	if in.Location != nil && !in.Location.Valid() {
		return entity.Validationf("location must be a point with longitude in [-180,180] and latitude in [-90,90]")
	}
	if in.RentPerHour != nil && *in.RentPerHour < 0 {
		return entity.Validationf("rent_per_hour cannot be negative")
	}
	if in.RentPerDay != nil && *in.RentPerDay < 0 {
		return entity.Validationf("rent_per_day cannot be negative")
	}
	return nil
}

func (uc *VehicleUseCase) GetVehicle(ctx context.Context, id string) (*entity.Vehicle, error) {
	v, err := uc.vehicleRepo.GetVehicleByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: vehicle not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to load vehicle %s: %v", id, err)
		return nil, entity.ErrInternal
	}
	return v, nil
}

func (uc *VehicleUseCase) ListVehicles(ctx context.Context, opts *contract.VehicleFilterOptions) ([]*entity.Vehicle, int64, error) {
	if opts == nil {
		opts = &contract.VehicleFilterOptions{}
	}
	if opts.VehicleType != nil && !opts.VehicleType.Valid() {
		return nil, 0, entity.Validationf("unknown vehicle type %q", *opts.VehicleType)
	}
	if opts.Near != nil {
		if !opts.Near.Point.Valid() {
			return nil, 0, entity.Validationf("invalid coordinates")
		}
		if opts.Near.RadiusMeters <= 0 {
			opts.Near.RadiusMeters = DefaultSearchRadiusMeters
		}
	}
	opts.Pagination = opts.Pagination.Normalize()

	vehicles, total, err := uc.vehicleRepo.ListVehicles(ctx, opts)
	if err != nil {
		uc.logger.Errorf("failed to list vehicles: %v", err)
		return nil, 0, entity.ErrInternal
	}
	return vehicles, total, nil
}

func (uc *VehicleUseCase) UpdateVehicle(ctx context.Context, caller entity.Caller, id string, in usecasecontract.VehicleInput) (*entity.Vehicle, error) {
	v, err := uc.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(caller, v.OwnerID, Authenticated, ownerOrAdmin); err != nil {
		return nil, err
	}
	if err := validateVehicleInput(in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.VehicleType != nil {
		updates["vehicle_type"] = *in.VehicleType
	}
	if in.Brand != nil {
		updates["brand"] = strings.TrimSpace(*in.Brand)
	}
	if in.Model != nil {
		updates["model"] = strings.TrimSpace(*in.Model)
	}
	if in.RentPerHour != nil {
		updates["rent_per_hour"] = *in.RentPerHour
	}
	if in.RentPerDay != nil {
		updates["rent_per_day"] = *in.RentPerDay
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.PickupAddress != nil {
		updates["pickup_address"] = strings.TrimSpace(*in.PickupAddress)
	}
	if in.Contact != nil {
		updates["contact"] = strings.TrimSpace(*in.Contact)
	}
	if in.IsAvailable != nil {
		updates["is_available"] = *in.IsAvailable
	}
	if len(updates) == 0 {
		return v, nil
	}
	updates["updated_at"] = uc.now().UTC()

	if err := uc.vehicleRepo.UpdateVehicle(ctx, id, updates); err != nil {
		uc.logger.Errorf("failed to update vehicle %s: %v", id, err)
		return nil, entity.ErrInternal
	}
	return uc.GetVehicle(ctx, id)
}

func (uc *VehicleUseCase) DeleteVehicle(ctx context.Context, caller entity.Caller, id string) error {
	v, err := uc.GetVehicle(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(caller, v.OwnerID, Authenticated, ownerOrAdmin); err != nil {
		return err
	}
	if err := uc.vehicleRepo.DeleteVehicle(ctx, id); err != nil {
		uc.logger.Errorf("failed to delete vehicle %s: %v", id, err)
		return entity.ErrInternal
	}
	return nil
}
