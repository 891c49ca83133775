package mocks

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type MockPlaceUsecase struct {
	ShouldFailCreate bool
	ShouldFailGet    bool
	ShouldFailList   bool
	ShouldFailUpdate bool
	ShouldFailDelete bool
	Err              error

	MockPlace entity.Place

	LastCaller      entity.Caller
	LastInput       usecasecontract.PlaceInput
	LastListOptions *contract.PlaceFilterOptions
}

var _ usecasecontract.IPlaceUseCase = (*MockPlaceUsecase)(nil)

func NewMockPlaceUsecase() *MockPlaceUsecase {
	return &MockPlaceUsecase{
		MockPlace: entity.Place{
			ID:       "mock-place-id",
			Name:     "Chai Point",
			Category: entity.PlaceCategoryCafe,
			Location: entity.NewGeoPoint(77.59, 12.97),
			Tags:     []string{"tea"},
			OwnerID:  "mock-user-id",
			IsActive: true,
		},
	}
}

func (m *MockPlaceUsecase) fail(def error) error {
	if m.Err != nil {
		return m.Err
	}
	return def
}

func (m *MockPlaceUsecase) CreatePlace(ctx context.Context, caller entity.Caller, in usecasecontract.PlaceInput) (*entity.Place, error) {
	m.LastCaller = caller
	m.LastInput = in
	if m.ShouldFailCreate {
		return nil, m.fail(fmt.Errorf("%w: only verified businesses can add places", entity.ErrForbidden))
	}
	place := m.MockPlace
	if in.Name != nil {
		place.Name = *in.Name
	}
	place.OwnerID = caller.UserID
	return &place, nil
}

func (m *MockPlaceUsecase) GetPlace(ctx context.Context, placeID string) (*entity.Place, error) {
	if m.ShouldFailGet {
		return nil, m.fail(fmt.Errorf("place %w", entity.ErrNotFound))
	}
	return &m.MockPlace, nil
}

func (m *MockPlaceUsecase) ListPlaces(ctx context.Context, opts *contract.PlaceFilterOptions) ([]*entity.Place, int64, error) {
	m.LastListOptions = opts
	if m.ShouldFailList {
		return nil, 0, m.fail(entity.ErrInternal)
	}
	return []*entity.Place{&m.MockPlace}, 1, nil
}

func (m *MockPlaceUsecase) UpdatePlace(ctx context.Context, caller entity.Caller, placeID string, in usecasecontract.PlaceInput) (*entity.Place, error) {
	m.LastCaller = caller
	m.LastInput = in
	if m.ShouldFailUpdate {
		return nil, m.fail(entity.ErrForbidden)
	}
	place := m.MockPlace
	if in.Name != nil {
		place.Name = *in.Name
	}
	return &place, nil
}

func (m *MockPlaceUsecase) DeletePlace(ctx context.Context, caller entity.Caller, placeID string) error {
	m.LastCaller = caller
	if m.ShouldFailDelete {
		return m.fail(entity.ErrForbidden)
	}
	return nil
}
