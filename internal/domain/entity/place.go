package entity

import "time"

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a point; longitude comes first.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

func (p GeoPoint) Valid() bool {
	if p.Type != "Point" || len(p.Coordinates) != 2 {
		return false
	}
	lng, lat := p.Coordinates[0], p.Coordinates[1]
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}

// PlaceCategory is the closed set of place categories.
type PlaceCategory string

const (
	PlaceCategoryFood          PlaceCategory = "food"
	PlaceCategoryCafe          PlaceCategory = "cafe"
	PlaceCategoryHostel        PlaceCategory = "hostel"
	PlaceCategoryPG            PlaceCategory = "pg"
	PlaceCategoryLibrary       PlaceCategory = "library"
	PlaceCategoryStationery    PlaceCategory = "stationery"
	PlaceCategoryMedical       PlaceCategory = "medical"
	PlaceCategoryEntertainment PlaceCategory = "entertainment"
	PlaceCategoryShopping      PlaceCategory = "shopping"
	PlaceCategoryTransport     PlaceCategory = "transport"
	PlaceCategoryOther         PlaceCategory = "other"
)

var placeCategories = map[PlaceCategory]struct{}{
	PlaceCategoryFood: {}, PlaceCategoryCafe: {}, PlaceCategoryHostel: {}, PlaceCategoryPG: {},
	PlaceCategoryLibrary: {}, PlaceCategoryStationery: {}, PlaceCategoryMedical: {},
	PlaceCategoryEntertainment: {}, PlaceCategoryShopping: {}, PlaceCategoryTransport: {},
	PlaceCategoryOther: {},
}

func (c PlaceCategory) Valid() bool {
	_, ok := placeCategories[c]
	return ok
}

// PlaceRatings holds the per-audience mean ratings, rounded to one decimal.
type PlaceRatings struct {
	Overall float64 `bson:"overall" json:"overall"`
	Student float64 `bson:"student" json:"student"`
	Public  float64 `bson:"public" json:"public"`
}

// PlaceReviewCount holds the visible review counts per audience.
type PlaceReviewCount struct {
	Total   int `bson:"total" json:"total"`
	Student int `bson:"student" json:"student"`
	Public  int `bson:"public" json:"public"`
}

// Place is a point of interest. Ratings and ReviewCount are written only by
// the rating aggregator.
type Place struct {
	ID          string           `bson:"_id,omitempty" json:"id"`
	Name        string           `bson:"name" json:"name"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Category    PlaceCategory    `bson:"category" json:"category"`
	Address     string           `bson:"address,omitempty" json:"address,omitempty"`
	Location    GeoPoint         `bson:"location" json:"location"`
	Tags        []string         `bson:"tags" json:"tags"`
	Images      []string         `bson:"images,omitempty" json:"images,omitempty"`
	Contact     string           `bson:"contact,omitempty" json:"contact,omitempty"`
	PriceRange  string           `bson:"price_range,omitempty" json:"price_range,omitempty"`
	OwnerID     string           `bson:"owner_id" json:"owner_id"`
	IsActive    bool             `bson:"is_active" json:"is_active"`
	Ratings     PlaceRatings     `bson:"ratings" json:"ratings"`
	ReviewCount PlaceReviewCount `bson:"review_count" json:"review_count"`
	CreatedAt   time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `bson:"updated_at" json:"updated_at"`
}

// GeoFilter narrows a listing to points near a location.
type GeoFilter struct {
	Point        GeoPoint
	RadiusMeters float64
}
