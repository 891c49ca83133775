package contract

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// IPlaceCache defines caching operations for place details.
type IPlaceCache interface {
	GetPlace(ctx context.Context, placeID string) (*entity.Place, bool, error)
	SetPlace(ctx context.Context, place *entity.Place) error
	InvalidatePlace(ctx context.Context, placeID string) error
}
