package mocks

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type MockVehicleUsecase struct {
	ShouldFailCreate bool
	ShouldFailGet    bool
	ShouldFailList   bool
	ShouldFailUpdate bool
	ShouldFailDelete bool
	Err              error

	MockVehicle entity.Vehicle

	LastCaller      entity.Caller
	LastInput       usecasecontract.VehicleInput
	LastListOptions *contract.VehicleFilterOptions
}

var _ usecasecontract.IVehicleUseCase = (*MockVehicleUsecase)(nil)

func NewMockVehicleUsecase() *MockVehicleUsecase {
	return &MockVehicleUsecase{
		MockVehicle: entity.Vehicle{
			ID:          "mock-vehicle-id",
			OwnerID:     "mock-user-id",
			VehicleType: entity.VehicleScooter,
			Brand:       "Ather",
			Model:       "450X",
			RentPerHour: 60,
			RentPerDay:  500,
			Location:    entity.NewGeoPoint(77.59, 12.97),
			IsAvailable: true,
		},
	}
}

func (m *MockVehicleUsecase) fail(def error) error {
	if m.Err != nil {
		return m.Err
	}
	return def
}

func (m *MockVehicleUsecase) CreateVehicle(ctx context.Context, caller entity.Caller, in usecasecontract.VehicleInput) (*entity.Vehicle, error) {
	m.LastCaller = caller
	m.LastInput = in
	if m.ShouldFailCreate {
		return nil, m.fail(entity.Validationf("rent must not be negative"))
	}
	vehicle := m.MockVehicle
	vehicle.OwnerID = caller.UserID
	return &vehicle, nil
}

func (m *MockVehicleUsecase) GetVehicle(ctx context.Context, id string) (*entity.Vehicle, error) {
	if m.ShouldFailGet {
		return nil, m.fail(fmt.Errorf("vehicle %w", entity.ErrNotFound))
	}
	return &m.MockVehicle, nil
}

func (m *MockVehicleUsecase) ListVehicles(ctx context.Context, opts *contract.VehicleFilterOptions) ([]*entity.Vehicle, int64, error) {
	m.LastListOptions = opts
	if m.ShouldFailList {
		return nil, 0, m.fail(entity.ErrInternal)
	}
	return []*entity.Vehicle{&m.MockVehicle}, 1, nil
}

func (m *MockVehicleUsecase) UpdateVehicle(ctx context.Context, caller entity.Caller, id string, in usecasecontract.VehicleInput) (*entity.Vehicle, error) {
	m.LastCaller = caller
	m.LastInput = in
	if m.ShouldFailUpdate {
		return nil, m.fail(entity.ErrForbidden)
	}
	vehicle := m.MockVehicle
	if in.IsAvailable != nil {
		vehicle.IsAvailable = *in.IsAvailable
	}
	return &vehicle, nil
}

func (m *MockVehicleUsecase) DeleteVehicle(ctx context.Context, caller entity.Caller, id string) error {
	m.LastCaller = caller
	if m.ShouldFailDelete {
		return m.fail(entity.ErrForbidden)
	}
	return nil
}
