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

type VehicleRepository struct {
	collection *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{collection: db.Collection(VehiclesCollection)}
}

var _ contract.IVehicleRepository = (*VehicleRepository)(nil)

func (r *VehicleRepository) CreateVehicle(ctx context.Context, vehicle *entity.Vehicle) error {
	if _, err := r.collection.InsertOne(ctx, vehicle); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) GetVehicleByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("vehicle '%s' %w", id, entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve vehicle: %w", err)
	}
	return &vehicle, nil
}

func (r *VehicleRepository) ListVehicles(ctx context.Context, opts *contract.VehicleFilterOptions) ([]*entity.Vehicle, int64, error) {
	if opts == nil {
		opts = &contract.VehicleFilterOptions{}
	}
	filter := bson.M{}
	if opts.VehicleType != nil {
		filter["vehicle_type"] = *opts.VehicleType
	}
	if opts.AvailableOnly {
		filter["is_available"] = true
	}
	countFilter := bson.M{}
	for k, v := range filter {
		countFilter[k] = v
	}
	if opts.Near != nil {
		filter["location"] = nearFilter(opts.Near)
		countFilter["location"] = withinFilter(opts.Near)
	}

	total, err := r.collection.CountDocuments(ctx, countFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	pagination := opts.Pagination.Normalize()
	findOptions := options.Find().
		SetSkip(pagination.Skip()).
		SetLimit(int64(pagination.PageSize))
	if opts.Near == nil {
		findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	vehicles := []*entity.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, total, nil
}

func (r *VehicleRepository) UpdateVehicle(ctx context.Context, id string, updates map[string]interface{}) error {
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("vehicle '%s' %w", id, entity.ErrNotFound)
	}
	return nil
}

func (r *VehicleRepository) DeleteVehicle(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("vehicle '%s' %w", id, entity.ErrNotFound)
	}
	return nil
}
