package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

type VehicleInput struct {
	VehicleType   *entity.VehicleType
	Brand         *string
	Model         *string
	RentPerHour   *float64
	RentPerDay    *float64
	Location      *entity.GeoPoint
	PickupAddress *string
	Contact       *string
	IsAvailable   *bool
}

type IVehicleUseCase interface {
	CreateVehicle(ctx context.Context, caller entity.Caller, in VehicleInput) (*entity.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*entity.Vehicle, error)
	ListVehicles(ctx context.Context, opts *contract.VehicleFilterOptions) ([]*entity.Vehicle, int64, error)
	UpdateVehicle(ctx context.Context, caller entity.Caller, id string, in VehicleInput) (*entity.Vehicle, error)
	DeleteVehicle(ctx context.Context, caller entity.Caller, id string) error
}
