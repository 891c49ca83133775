package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// defaultPlaceTTL bounds how long a detail fill that lost a race with an
// aggregate write can be served.
const defaultPlaceTTL = 5 * time.Minute

// PlaceCacheStore keeps place details in Redis as JSON.
type PlaceCacheStore struct {
	rdb       redis.Cmdable
	detailTTL time.Duration
}

func NewPlaceCacheStore(rdb redis.Cmdable) *PlaceCacheStore {
	return &PlaceCacheStore{
		rdb:       rdb,
		detailTTL: defaultPlaceTTL,
	}
}

var _ contract.IPlaceCache = (*PlaceCacheStore)(nil)

func placeDetailKey(id string) string { return fmt.Sprintf("place:id:%s", id) }

// GetPlace returns (nil, false, nil) on a miss. A corrupt entry is treated as
// a miss.
func (c *PlaceCacheStore) GetPlace(ctx context.Context, placeID string) (*entity.Place, bool, error) {
	b, err := c.rdb.Get(ctx, placeDetailKey(placeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var place entity.Place
	if err := json.Unmarshal(b, &place); err != nil {
		return nil, false, nil
	}
	return &place, true, nil
}

func (c *PlaceCacheStore) SetPlace(ctx context.Context, place *entity.Place) error {
	data, err := json.Marshal(place)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, placeDetailKey(place.ID), data, c.detailTTL).Err()
}

func (c *PlaceCacheStore) InvalidatePlace(ctx context.Context, placeID string) error {
	return c.rdb.Del(ctx, placeDetailKey(placeID)).Err()
}
