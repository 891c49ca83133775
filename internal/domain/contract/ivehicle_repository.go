package contract

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// VehicleFilterOptions encapsulates filtering and pagination for vehicle listings.
type VehicleFilterOptions struct {
	VehicleType   *entity.VehicleType
	AvailableOnly bool
	Near          *entity.GeoFilter
	Pagination    Pagination
}

type IVehicleRepository interface {
	CreateVehicle(ctx context.Context, vehicle *entity.Vehicle) error
	GetVehicleByID(ctx context.Context, id string) (*entity.Vehicle, error)
	ListVehicles(ctx context.Context, opts *VehicleFilterOptions) ([]*entity.Vehicle, int64, error)
	UpdateVehicle(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteVehicle(ctx context.Context, id string) error
}
