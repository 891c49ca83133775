package contract

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// PlaceFilterOptions encapsulates filtering and pagination for place listings.
type PlaceFilterOptions struct {
	Category   *entity.PlaceCategory
	Query      string // full-text search over name, description and tags
	Near       *entity.GeoFilter
	OwnerID    *string
	Pagination Pagination
}

// IPlaceRepository provides methods for managing place data in the database.
type IPlaceRepository interface {
	CreatePlace(ctx context.Context, place *entity.Place) error
	GetPlaceByID(ctx context.Context, placeID string) (*entity.Place, error)
	ListPlaces(ctx context.Context, opts *PlaceFilterOptions) ([]*entity.Place, int64, error)
	// UpdatePlace sets owner-writable fields. Aggregate fields are rejected.
	UpdatePlace(ctx context.Context, placeID string, updates map[string]interface{}) error
	// DeletePlace deactivates a place; it disappears from listings.
	DeletePlace(ctx context.Context, placeID string) error
	// UpdateAggregates writes ratings and review counts in a single update.
	UpdateAggregates(ctx context.Context, placeID string, agg entity.PlaceAggregates) error
	CountPlaces(ctx context.Context) (int64, error)
}
