package usecase

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// RatingAggregator recomputes the derived rating fields of a place from its
// visible reviews.
type RatingAggregator struct {
	reviewRepo contract.IReviewRepository
	placeRepo  contract.IPlaceRepository
	placeCache contract.IPlaceCache
	logger     usecasecontract.IAppLogger
}

func NewRatingAggregator(reviewRepo contract.IReviewRepository, placeRepo contract.IPlaceRepository, logger usecasecontract.IAppLogger) *RatingAggregator {
	return &RatingAggregator{
		reviewRepo: reviewRepo,
		placeRepo:  placeRepo,
		logger:     logger,
	}
}

// SetPlaceCache enables invalidation of cached place details after each write.
func (a *RatingAggregator) SetPlaceCache(cache contract.IPlaceCache) {
	a.placeCache = cache
}

var _ usecasecontract.IRatingAggregator = (*RatingAggregator)(nil)

// Recompute reads the full visible review set of the place and writes the
// aggregates back in one update.
func (a *RatingAggregator) Recompute(ctx context.Context, placeID string) (entity.PlaceAggregates, error) {
	samples, err := a.reviewRepo.ListVisibleRatings(ctx, placeID)
	if err != nil {
		return entity.PlaceAggregates{}, fmt.Errorf("failed to load visible ratings: %w", err)
	}
	agg := entity.ComputeAggregates(samples)
	a.invalidate(ctx, placeID)
	if err := a.placeRepo.UpdateAggregates(ctx, placeID, agg); err != nil {
		return entity.PlaceAggregates{}, fmt.Errorf("failed to write aggregates: %w", err)
	}
	// A reader that loaded the place before the write may have refilled the
	// cache in the meantime.
	a.invalidate(ctx, placeID)
	return agg, nil
}

func (a *RatingAggregator) invalidate(ctx context.Context, placeID string) {
	if a.placeCache == nil {
		return
	}
	if err := a.placeCache.InvalidatePlace(ctx, placeID); err != nil {
		a.logger.Warnf("failed to invalidate cached place %s: %v", placeID, err)
	}
}
