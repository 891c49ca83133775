package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// earthRadiusMeters converts a radius to radians for $centerSphere.
const earthRadiusMeters = 6378100.0

// PlaceRepository is the MongoDB implementation of contract.IPlaceRepository.
type PlaceRepository struct {
	collection *mongo.Collection
}

func NewPlaceRepository(db *mongo.Database) *PlaceRepository {
	return &PlaceRepository{collection: db.Collection(PlacesCollection)}
}

var _ contract.IPlaceRepository = (*PlaceRepository)(nil)

// aggregateFields may only be written through UpdateAggregates.
var aggregateFields = []string{"ratings", "review_count"}

func (r *PlaceRepository) CreatePlace(ctx context.Context, place *entity.Place) error {
	if place.Tags == nil {
		place.Tags = []string{}
	}
	if _, err := r.collection.InsertOne(ctx, place); err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}
	return nil
}

func (r *PlaceRepository) GetPlaceByID(ctx context.Context, placeID string) (*entity.Place, error) {
	var place entity.Place
	err := r.collection.FindOne(ctx, bson.M{"_id": placeID}).Decode(&place)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("place '%s' %w", placeID, entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve place: %w", err)
	}
	return &place, nil
}

// nearFilter orders by distance. It cannot be used to count documents.
func nearFilter(g *entity.GeoFilter) bson.M {
	return bson.M{"$near": bson.M{
		"$geometry":    g.Point,
		"$maxDistance": g.RadiusMeters,
	}}
}

// withinFilter selects the same disc as nearFilter without ordering.
func withinFilter(g *entity.GeoFilter) bson.M {
	return bson.M{"$geoWithin": bson.M{
		"$centerSphere": bson.A{g.Point.Coordinates, g.RadiusMeters / earthRadiusMeters},
	}}
}

// buildPlaceFilters returns the find filter and the count filter. They differ
// only when a $near clause is involved.
func buildPlaceFilters(opts *contract.PlaceFilterOptions) (bson.M, bson.M, bool) {
	filter := bson.M{"is_active": true}
	if opts.Category != nil {
		filter["category"] = *opts.Category
	}
	if opts.OwnerID != nil && *opts.OwnerID != "" {
		filter["owner_id"] = *opts.OwnerID
	}
	textSearch := strings.TrimSpace(opts.Query) != ""
	if textSearch {
		filter["$text"] = bson.M{"$search": opts.Query}
	}

	count := bson.M{}
	for k, v := range filter {
		count[k] = v
	}
	if opts.Near != nil {
		// $text and $near cannot share a query; a text search keeps the
		// radius but is ordered by relevance.
		if textSearch {
			filter["location"] = withinFilter(opts.Near)
		} else {
			filter["location"] = nearFilter(opts.Near)
		}
		count["location"] = withinFilter(opts.Near)
	}
	return filter, count, textSearch
}

func (r *PlaceRepository) ListPlaces(ctx context.Context, opts *contract.PlaceFilterOptions) ([]*entity.Place, int64, error) {
	if opts == nil {
		opts = &contract.PlaceFilterOptions{}
	}
	filter, countFilter, textSearch := buildPlaceFilters(opts)

	total, err := r.collection.CountDocuments(ctx, countFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count places: %w", err)
	}

	pagination := opts.Pagination.Normalize()
	findOptions := options.Find().
		SetSkip(pagination.Skip()).
		SetLimit(int64(pagination.PageSize))
	switch {
	case textSearch:
		findOptions.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
		findOptions.SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})
	case opts.Near == nil:
		findOptions.SetSort(bson.D{{Key: "ratings.overall", Value: -1}, {Key: "created_at", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find places: %w", err)
	}
	defer cursor.Close(ctx)

	places := []*entity.Place{}
	if err := cursor.All(ctx, &places); err != nil {
		return nil, 0, fmt.Errorf("failed to decode places: %w", err)
	}
	return places, total, nil
}

func (r *PlaceRepository) UpdatePlace(ctx context.Context, placeID string, updates map[string]interface{}) error {
	for key := range updates {
		for _, f := range aggregateFields {
			if key == f || strings.HasPrefix(key, f+".") {
				return entity.Validationf("%s cannot be updated directly", key)
			}
		}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	filter := bson.M{"_id": placeID, "is_active": true}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("place '%s' %w", placeID, entity.ErrNotFound)
	}
	return nil
}

func (r *PlaceRepository) DeletePlace(ctx context.Context, placeID string) error {
	update := bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": placeID, "is_active": true}, update)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("place '%s' %w", placeID, entity.ErrNotFound)
	}
	return nil
}

// UpdateAggregates overwrites ratings and counts in one $set so readers never
// observe a half-written aggregate.
func (r *PlaceRepository) UpdateAggregates(ctx context.Context, placeID string, agg entity.PlaceAggregates) error {
	update := bson.M{"$set": bson.M{
		"ratings":      agg.Ratings,
		"review_count": agg.ReviewCount,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": placeID}, update)
	if err != nil {
		return fmt.Errorf("failed to update place aggregates: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("place '%s' %w", placeID, entity.ErrNotFound)
	}
	return nil
}

func (r *PlaceRepository) CountPlaces(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	return n, nil
}
