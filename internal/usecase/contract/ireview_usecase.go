package usecasecontract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

type CreateReviewInput struct {
	PlaceID   string
	Rating    float64
	Title     string
	Content   string
	VisitDate *time.Time
	VisitType entity.VisitType
}

type IReviewUseCase interface {
	CreateReview(ctx context.Context, caller entity.Caller, in CreateReviewInput) (*entity.Review, error)
	GetPlaceReviews(ctx context.Context, placeID string, pagination contract.Pagination) ([]*entity.Review, int64, error)
	GetUserReviews(ctx context.Context, userID string, pagination contract.Pagination) ([]*entity.Review, int64, error)
	FlagReview(ctx context.Context, caller entity.Caller, reviewID, reason string) error
	ModerateReview(ctx context.Context, caller entity.Caller, reviewID string, action entity.ModerationAction, note string) (*entity.Review, error)
	GetFlaggedReviews(ctx context.Context, pagination contract.Pagination) ([]*entity.Review, int64, error)
}

// IRatingAggregator keeps a place's aggregate fields in step with its visible reviews.
type IRatingAggregator interface {
	Recompute(ctx context.Context, placeID string) (entity.PlaceAggregates, error)
}
