package contract

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

type IReviewRepository interface {
	// CreateReview inserts a review. A second review for the same (place, user)
	// pair fails with entity.ErrDuplicateReview.
	CreateReview(ctx context.Context, review *entity.Review) error
	GetReviewByID(ctx context.Context, id string) (*entity.Review, error)
	HasReview(ctx context.Context, placeID, userID string) (bool, error)
	DeleteReview(ctx context.Context, id string) error

	// ListVisibleRatings returns every review of the place with is_hidden=false,
	// joined with its author's account kind.
	ListVisibleRatings(ctx context.Context, placeID string) ([]entity.RatingSample, error)

	ListReviewsByPlace(ctx context.Context, placeID string, pagination Pagination) ([]*entity.Review, int64, error)
	ListReviewsByUser(ctx context.Context, userID string, pagination Pagination) ([]*entity.Review, int64, error)
	ListFlaggedReviews(ctx context.Context, pagination Pagination) ([]*entity.Review, int64, error)

	// Moderation
	UpdateModeration(ctx context.Context, review *entity.Review) error
	FlagReview(ctx context.Context, id, reason string) error
	CountReviews(ctx context.Context) (int64, error)
}
