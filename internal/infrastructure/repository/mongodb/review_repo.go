package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(ReviewsCollection)}
}

var _ contract.IReviewRepository = (*ReviewRepository)(nil)

func (r *ReviewRepository) CreateReview(ctx context.Context, review *entity.Review) error {
	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id string) (*entity.Review, error) {
	var review entity.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("review '%s' %w", id, entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve review: %w", err)
	}
	return &review, nil
}

func (r *ReviewRepository) HasReview(ctx context.Context, placeID, userID string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"place_id": placeID, "user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return n > 0, nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("review '%s' %w", id, entity.ErrNotFound)
	}
	return nil
}

// ListVisibleRatings joins each non-hidden review with its author's account
// kind. Reviews whose author no longer exists keep an empty kind and count only
// toward the overall rating.
func (r *ReviewRepository) ListVisibleRatings(ctx context.Context, placeID string) ([]entity.RatingSample, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"place_id": placeID, "is_hidden": false}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         UsersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "reviewer",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$reviewer",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":           0,
			"rating":        1,
			"reviewer_kind": bson.M{"$ifNull": bson.A{"$reviewer.account_kind", ""}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to load visible ratings: %w", err)
	}
	defer cursor.Close(ctx)

	samples := []entity.RatingSample{}
	if err := cursor.All(ctx, &samples); err != nil {
		return nil, fmt.Errorf("failed to decode visible ratings: %w", err)
	}
	return samples, nil
}

func (r *ReviewRepository) list(ctx context.Context, filter bson.M, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	pagination = pagination.Normalize()
	findOptions := options.Find().
		SetSkip(pagination.Skip()).
		SetLimit(int64(pagination.PageSize)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*entity.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *ReviewRepository) ListReviewsByPlace(ctx context.Context, placeID string, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	return r.list(ctx, bson.M{"place_id": placeID, "is_hidden": false}, pagination)
}

func (r *ReviewRepository) ListReviewsByUser(ctx context.Context, userID string, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	return r.list(ctx, bson.M{"user_id": userID}, pagination)
}

func (r *ReviewRepository) ListFlaggedReviews(ctx context.Context, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	return r.list(ctx, bson.M{"is_flagged": true}, pagination)
}

func (r *ReviewRepository) UpdateModeration(ctx context.Context, review *entity.Review) error {
	update := bson.M{"$set": bson.M{
		"is_hidden":       review.IsHidden,
		"is_flagged":      review.IsFlagged,
		"is_visible":      review.IsVisible,
		"flag_reason":     review.FlagReason,
		"moderation_note": review.ModerationNote,
		"moderated_by":    review.ModeratedBy,
		"updated_at":      review.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": review.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update review moderation: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("review '%s' %w", review.ID, entity.ErrNotFound)
	}
	return nil
}

func (r *ReviewRepository) FlagReview(ctx context.Context, id, reason string) error {
	update := bson.M{"$set": bson.M{
		"is_flagged":  true,
		"flag_reason": reason,
		"updated_at":  time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to flag review: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("review '%s' %w", id, entity.ErrNotFound)
	}
	return nil
}

func (r *ReviewRepository) CountReviews(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return n, nil
}
