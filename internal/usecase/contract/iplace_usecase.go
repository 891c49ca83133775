package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// PlaceInput carries the owner-writable fields of a place. Nil fields are left unchanged on update.
type PlaceInput struct {
	Name        *string
	Description *string
	Category    *entity.PlaceCategory
	Address     *string
	Location    *entity.GeoPoint
	Tags        []string
	Images      []string
	Contact     *string
	PriceRange  *string
}

type IPlaceUseCase interface {
	CreatePlace(ctx context.Context, caller entity.Caller, in PlaceInput) (*entity.Place, error)
	GetPlace(ctx context.Context, placeID string) (*entity.Place, error)
	ListPlaces(ctx context.Context, opts *contract.PlaceFilterOptions) ([]*entity.Place, int64, error)
	UpdatePlace(ctx context.Context, caller entity.Caller, placeID string, in PlaceInput) (*entity.Place, error)
	DeletePlace(ctx context.Context, caller entity.Caller, placeID string) error
}
