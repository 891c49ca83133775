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

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

var _ contract.IUserRepository = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email or student id already registered", entity.ErrDuplicateIdentity)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %w", entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) GetUserByStudentID(ctx context.Context, studentID string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"student.student_id": studentID})
}

func (r *MongoUserRepository) SetVerificationToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"verification_token":         tokenHash,
		"verification_token_expires": expires,
		"updated_at":                 time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %w", entity.ErrNotFound)
	}
	return nil
}

// approvalKinds lists the account kinds that stay pending after email
// confirmation.
func approvalKinds() bson.A {
	kinds := bson.A{}
	for _, k := range []entity.AccountKind{entity.AccountKindStudent, entity.AccountKindPublic, entity.AccountKindBusiness, entity.AccountKindAdmin} {
		if k.RequiresAdminApproval() {
			kinds = append(kinds, string(k))
		}
	}
	return kinds
}

// keepIfPending keeps field unchanged for kinds awaiting an admin decision
// and sets it to value otherwise.
func keepIfPending(field string, value any) bson.M {
	return bson.M{"$cond": bson.A{
		bson.M{"$in": bson.A{"$account_kind", approvalKinds()}},
		"$" + field,
		value,
	}}
}

// ConsumeVerificationToken matches the token, clears it and confirms the
// email in one document update. Two concurrent confirmations cannot both
// succeed, and a consumed token always leaves a confirmed account.
func (r *MongoUserRepository) ConsumeVerificationToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	filter := bson.M{
		"verification_token":         tokenHash,
		"verification_token_expires": bson.M{"$gt": now},
	}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"email_verified":      true,
			"account_verified":    keepIfPending("account_verified", true),
			"verification_status": keepIfPending("verification_status", string(entity.VerificationApproved)),
			"updated_at":          now,
		}}},
		{{Key: "$unset", Value: bson.A{"verification_token", "verification_token_expires"}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user entity.User
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("verification token %w", entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to consume verification token: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) UpdateVerificationState(ctx context.Context, user *entity.User) error {
	set := bson.M{
		"email_verified":      user.EmailVerified,
		"account_verified":    user.AccountVerified,
		"verification_status": user.VerificationStatus,
		"rejection_reason":    user.RejectionReason,
		"verified_by":         user.VerifiedBy,
		"updated_at":          user.UpdatedAt,
	}
	if user.VerifiedAt != nil {
		set["verified_at"] = *user.VerifiedAt
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update verification state: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %w", entity.ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepository) UpdateUserRole(ctx context.Context, id string, role entity.UserRole) error {
	update := bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %w", entity.ErrNotFound)
	}
	return nil
}

func buildUserFilter(opts *contract.UserFilterOptions) bson.M {
	filter := bson.M{}
	if opts == nil {
		return filter
	}
	if opts.Kind != nil {
		filter["account_kind"] = *opts.Kind
	}
	if opts.VerificationStatus != nil {
		filter["verification_status"] = *opts.VerificationStatus
	}
	if opts.EmailVerified != nil {
		filter["email_verified"] = *opts.EmailVerified
	}
	return filter
}

func (r *MongoUserRepository) ListUsers(ctx context.Context, opts *contract.UserFilterOptions) ([]*entity.User, int64, error) {
	filter := buildUserFilter(opts)
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	pagination := contract.Pagination{}
	if opts != nil {
		pagination = opts.Pagination
	}
	pagination = pagination.Normalize()
	findOptions := options.Find().
		SetSkip(pagination.Skip()).
		SetLimit(int64(pagination.PageSize)).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []*entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, total, nil
}

func (r *MongoUserRepository) CountUsers(ctx context.Context, opts *contract.UserFilterOptions) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, buildUserFilter(opts))
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
