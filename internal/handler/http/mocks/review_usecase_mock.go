package mocks

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type MockReviewUsecase struct {
	ShouldFailCreate   bool
	ShouldFailList     bool
	ShouldFailFlag     bool
	ShouldFailModerate bool
	Err                error

	MockReview entity.Review

	LastCaller     entity.Caller
	LastInput      usecasecontract.CreateReviewInput
	LastPagination contract.Pagination
	LastAction     entity.ModerationAction
	LastReason     string
}

var _ usecasecontract.IReviewUseCase = (*MockReviewUsecase)(nil)

func NewMockReviewUsecase() *MockReviewUsecase {
	return &MockReviewUsecase{
		MockReview: entity.Review{
			ID:        "mock-review-id",
			PlaceID:   "mock-place-id",
			UserID:    "mock-user-id",
			Rating:    4,
			Content:   "Good filter coffee",
			IsVisible: true,
		},
	}
}

func (m *MockReviewUsecase) fail(def error) error {
	if m.Err != nil {
		return m.Err
	}
	return def
}

func (m *MockReviewUsecase) CreateReview(ctx context.Context, caller entity.Caller, in usecasecontract.CreateReviewInput) (*entity.Review, error) {
	m.LastCaller = caller
	m.LastInput = in
	if m.ShouldFailCreate {
		return nil, m.fail(entity.ErrDuplicateReview)
	}
	review := m.MockReview
	review.PlaceID = in.PlaceID
	review.UserID = caller.UserID
	review.Rating = in.Rating
	review.Content = in.Content
	return &review, nil
}

func (m *MockReviewUsecase) GetPlaceReviews(ctx context.Context, placeID string, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	m.LastPagination = pagination
	if m.ShouldFailList {
		return nil, 0, m.fail(fmt.Errorf("place %w", entity.ErrNotFound))
	}
	return []*entity.Review{&m.MockReview}, 1, nil
}

func (m *MockReviewUsecase) GetUserReviews(ctx context.Context, userID string, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	m.LastPagination = pagination
	if m.ShouldFailList {
		return nil, 0, m.fail(entity.ErrInternal)
	}
	return []*entity.Review{&m.MockReview}, 1, nil
}

func (m *MockReviewUsecase) FlagReview(ctx context.Context, caller entity.Caller, reviewID, reason string) error {
	m.LastCaller = caller
	m.LastReason = reason
	if m.ShouldFailFlag {
		return m.fail(fmt.Errorf("review %w", entity.ErrNotFound))
	}
	return nil
}

func (m *MockReviewUsecase) ModerateReview(ctx context.Context, caller entity.Caller, reviewID string, action entity.ModerationAction, note string) (*entity.Review, error) {
	m.LastCaller = caller
	m.LastAction = action
	if m.ShouldFailModerate {
		return nil, m.fail(fmt.Errorf("review %w", entity.ErrNotFound))
	}
	if action == entity.ModerationDelete {
		return nil, nil
	}
	review := m.MockReview
	review.IsHidden = action == entity.ModerationHide
	review.IsVisible = !review.IsHidden
	review.ModerationNote = note
	review.ModeratedBy = caller.UserID
	return &review, nil
}

func (m *MockReviewUsecase) GetFlaggedReviews(ctx context.Context, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	m.LastPagination = pagination
	if m.ShouldFailList {
		return nil, 0, m.fail(entity.ErrInternal)
	}
	flagged := m.MockReview
	flagged.IsFlagged = true
	return []*entity.Review{&flagged}, 1, nil
}
