package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection    = "users"
	PlacesCollection   = "places"
	ReviewsCollection  = "reviews"
	VehiclesCollection = "vehicles"
)

// indexModels lists the indexes each collection relies on. Uniqueness of
// email, student id and (place, user) is enforced here as well as up front.
func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
			{
				Keys: bson.D{{Key: "student.student_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_student_id").
					SetPartialFilterExpression(bson.M{"student.student_id": bson.M{"$exists": true}}),
			},
			{Keys: bson.D{{Key: "verification_token", Value: 1}}, Options: options.Index().SetSparse(true).SetName("verification_token")},
			{Keys: bson.D{{Key: "account_kind", Value: 1}, {Key: "verification_status", Value: 1}}, Options: options.Index().SetName("kind_status")},
		},
		PlacesCollection: {
			{Keys: bson.D{{Key: "location", Value: "2dsphere"}}, Options: options.Index().SetName("location_2dsphere")},
			{
				Keys: bson.D{
					{Key: "name", Value: "text"},
					{Key: "description", Value: "text"},
					{Key: "tags", Value: "text"},
				},
				Options: options.Index().SetName("place_text").
					SetWeights(bson.D{{Key: "name", Value: 10}, {Key: "tags", Value: 5}, {Key: "description", Value: 1}}),
			},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "is_active", Value: 1}}, Options: options.Index().SetName("category_active")},
			{Keys: bson.D{{Key: "owner_id", Value: 1}}, Options: options.Index().SetName("owner")},
		},
		ReviewsCollection: {
			{
				Keys:    bson.D{{Key: "place_id", Value: 1}, {Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_place_user"),
			},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("user_recent")},
			{Keys: bson.D{{Key: "is_flagged", Value: 1}}, Options: options.Index().SetName("flagged")},
		},
		VehiclesCollection: {
			{Keys: bson.D{{Key: "location", Value: "2dsphere"}}, Options: options.Index().SetName("location_2dsphere")},
			{Keys: bson.D{{Key: "vehicle_type", Value: 1}, {Key: "is_available", Value: 1}}, Options: options.Index().SetName("type_available")},
		},
	}
}

// EnsureIndexes creates every index the repositories need. Existing indexes
// with identical definitions are left alone by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range indexModels() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
