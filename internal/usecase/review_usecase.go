package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

const (
	minRating        = 1
	maxRating        = 5
	maxReviewContent = 2000
)

type ReviewUseCase struct {
	reviewRepo    contract.IReviewRepository
	placeRepo     contract.IPlaceRepository
	aggregator    usecasecontract.IRatingAggregator
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	metrics       Metrics
	now           func() time.Time
}

func NewReviewUseCase(
	reviewRepo contract.IReviewRepository,
	placeRepo contract.IPlaceRepository,
	aggregator usecasecontract.IRatingAggregator,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	metrics Metrics,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:    reviewRepo,
		placeRepo:     placeRepo,
		aggregator:    aggregator,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		metrics:       metricsOrNop(metrics),
		now:           time.Now,
	}
}

var _ usecasecontract.IReviewUseCase = (*ReviewUseCase)(nil)

// CreateReview stores the caller's review of a place and refreshes the place
// aggregates. A caller may review a place only once.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, caller entity.Caller, in usecasecontract.CreateReviewInput) (*entity.Review, error) {
	if err := Authorize(caller, "", Authenticated); err != nil {
		return nil, err
	}
	if err := validateReviewInput(in); err != nil {
		return nil, err
	}

	place, err := uc.placeRepo.GetPlaceByID(ctx, in.PlaceID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: place not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to load place %s: %v", in.PlaceID, err)
		return nil, entity.ErrInternal
	}
	if !place.IsActive {
		return nil, fmt.Errorf("%w: place not found", entity.ErrNotFound)
	}

	exists, err := uc.reviewRepo.HasReview(ctx, place.ID, caller.UserID)
	if err != nil {
		uc.logger.Errorf("failed to check for existing review: %v", err)
		return nil, entity.ErrInternal
	}
	if exists {
		return nil, entity.ErrDuplicateReview
	}

	now := uc.now().UTC()
	review := &entity.Review{
		ID:        uc.uuidGenerator.NewUUID(),
		PlaceID:   place.ID,
		UserID:    caller.UserID,
		Rating:    in.Rating,
		Title:     strings.TrimSpace(in.Title),
		Content:   strings.TrimSpace(in.Content),
		VisitDate: in.VisitDate,
		VisitType: in.VisitType,
		IsVisible: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.reviewRepo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, entity.ErrDuplicateIdentity) {
			return nil, entity.ErrDuplicateReview
		}
		uc.logger.Errorf("failed to create review: %v", err)
		return nil, entity.ErrInternal
	}
	uc.metrics.ReviewCreated()

	uc.recompute(ctx, place.ID)
	return review, nil
}

func validateReviewInput(in usecasecontract.CreateReviewInput) error {
	if strings.TrimSpace(in.PlaceID) == "" {
		return entity.Validationf("place_id is required")
	}
	if in.Rating < minRating || in.Rating > maxRating {
		return entity.Validationf("rating must be between %d and %d", minRating, maxRating)
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return entity.Validationf("content is required")
	}
	if len(content) > maxReviewContent {
		return entity.Validationf("content must be at most %d characters", maxReviewContent)
	}
	switch in.VisitType {
	case "", entity.VisitSolo, entity.VisitFriends, entity.VisitFamily, entity.VisitDate, entity.VisitBusiness:
	default:
		return entity.Validationf("unknown visit type %q", in.VisitType)
	}
	return nil
}

// recompute refreshes the place aggregates. The review mutation has already
// committed, so failures are logged and counted only.
func (uc *ReviewUseCase) recompute(ctx context.Context, placeID string) {
	if _, err := uc.aggregator.Recompute(ctx, placeID); err != nil {
		uc.metrics.RecomputeFailed()
		uc.logger.Errorf("failed to recompute aggregates for place %s: %v", placeID, err)
	}
}

func (uc *ReviewUseCase) GetPlaceReviews(ctx context.Context, placeID string, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	if _, err := uc.placeRepo.GetPlaceByID(ctx, placeID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, 0, fmt.Errorf("%w: place not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to load place %s: %v", placeID, err)
		return nil, 0, entity.ErrInternal
	}
	reviews, total, err := uc.reviewRepo.ListReviewsByPlace(ctx, placeID, pagination.Normalize())
	if err != nil {
		uc.logger.Errorf("failed to list reviews for place %s: %v", placeID, err)
		return nil, 0, entity.ErrInternal
	}
	return reviews, total, nil
}

func (uc *ReviewUseCase) GetUserReviews(ctx context.Context, userID string, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	reviews, total, err := uc.reviewRepo.ListReviewsByUser(ctx, userID, pagination.Normalize())
	if err != nil {
		uc.logger.Errorf("failed to list reviews for user %s: %v", userID, err)
		return nil, 0, entity.ErrInternal
	}
	return reviews, total, nil
}

// FlagReview marks a review for moderation. Flagging does not change which
// reviews count toward aggregates.
func (uc *ReviewUseCase) FlagReview(ctx context.Context, caller entity.Caller, reviewID, reason string) error {
	if err := Authorize(caller, "", Authenticated); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entity.Validationf("reason is required")
	}
	if _, err := uc.reviewRepo.GetReviewByID(ctx, reviewID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("%w: review not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to load review %s: %v", reviewID, err)
		return entity.ErrInternal
	}
	if err := uc.reviewRepo.FlagReview(ctx, reviewID, reason); err != nil {
		uc.logger.Errorf("failed to flag review %s: %v", reviewID, err)
		return entity.ErrInternal
	}
	return nil
}

// ModerateReview applies an admin action. Aggregates are recomputed whenever
// the set of visible reviews of the place may have changed.
func (uc *ReviewUseCase) ModerateReview(ctx context.Context, caller entity.Caller, reviewID string, action entity.ModerationAction, note string) (*entity.Review, error) {
	if err := Authorize(caller, "", Authenticated, isAdmin); err != nil {
		return nil, err
	}
	if !action.Valid() {
		return nil, entity.Validationf("action must be approve, hide or delete")
	}

	review, err := uc.reviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: review not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to load review %s: %v", reviewID, err)
		return nil, entity.ErrInternal
	}

	if action == entity.ModerationDelete {
		if err := uc.reviewRepo.DeleteReview(ctx, reviewID); err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return nil, fmt.Errorf("%w: review not found", entity.ErrNotFound)
			}
			uc.logger.Errorf("failed to delete review %s: %v", reviewID, err)
			return nil, entity.ErrInternal
		}
		uc.metrics.ModerationApplied(action)
		uc.recompute(ctx, review.PlaceID)
		return review, nil
	}

	hiddenChanged, err := review.Moderate(action, strings.TrimSpace(note), caller.UserID, uc.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uc.reviewRepo.UpdateModeration(ctx, review); err != nil {
		uc.logger.Errorf("failed to update moderation of review %s: %v", reviewID, err)
		return nil, entity.ErrInternal
	}
	uc.metrics.ModerationApplied(action)
	if hiddenChanged {
		uc.recompute(ctx, review.PlaceID)
	}
	return review, nil
}

func (uc *ReviewUseCase) GetFlaggedReviews(ctx context.Context, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	reviews, total, err := uc.reviewRepo.ListFlaggedReviews(ctx, pagination.Normalize())
	if err != nil {
		uc.logger.Errorf("failed to list flagged reviews: %v", err)
		return nil, 0, entity.ErrInternal
	}
	return reviews, total, nil
}
