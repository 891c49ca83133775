package dto

import (
	"strings"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// LocationRequest is a point given as separate coordinates.
type LocationRequest struct {
	Longitude *float64 `json:"longitude" binding:"required,lng"`
	Latitude  *float64 `json:"latitude" binding:"required,lat"`
}

func (l *LocationRequest) toGeoPoint() *entity.GeoPoint {
	if l == nil || l.Longitude == nil || l.Latitude == nil {
		return nil
	}
	p := entity.NewGeoPoint(*l.Longitude, *l.Latitude)
	return &p
}

type CreatePlaceRequest struct {
	Name        string           `json:"name" binding:"required,max=150"`
	Description string           `json:"description" binding:"max=2000"`
	Category    string           `json:"category" binding:"required,oneof=food cafe hostel pg library stationery medical entertainment shopping transport other"`
	Address     string           `json:"address" binding:"max=300"`
	Location    *LocationRequest `json:"location" binding:"required"`
	Tags        []string         `json:"tags" binding:"omitempty,max=20,dive,max=40"`
	Images      []string         `json:"images" binding:"omitempty,max=10,dive,url"`
	Contact     string           `json:"contact" binding:"max=100"`
	PriceRange  string           `json:"price_range" binding:"max=20"`
}

func (r CreatePlaceRequest) ToInput() usecasecontract.PlaceInput {
	category := entity.PlaceCategory(r.Category)
	return usecasecontract.PlaceInput{
		Name:        &r.Name,
		Description: &r.Description,
		Category:    &category,
		Address:     &r.Address,
		Location:    r.Location.toGeoPoint(),
		Tags:        r.Tags,
		Images:      r.Images,
		Contact:     &r.Contact,
		PriceRange:  &r.PriceRange,
	}
}

// UpdatePlaceRequest is a partial update; absent fields are unchanged.
type UpdatePlaceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=150"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Category    *string          `json:"category" binding:"omitempty,oneof=food cafe hostel pg library stationery medical entertainment shopping transport other"`
	Address     *string          `json:"address" binding:"omitempty,max=300"`
	Location    *LocationRequest `json:"location"`
	Tags        []string         `json:"tags" binding:"omitempty,max=20,dive,max=40"`
	Images      []string         `json:"images" binding:"omitempty,max=10,dive,url"`
	Contact     *string          `json:"contact" binding:"omitempty,max=100"`
	PriceRange  *string          `json:"price_range" binding:"omitempty,max=20"`
}

func (r UpdatePlaceRequest) ToInput() usecasecontract.PlaceInput {
	in := usecasecontract.PlaceInput{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Location:    r.Location.toGeoPoint(),
		Tags:        r.Tags,
		Images:      r.Images,
		Contact:     r.Contact,
		PriceRange:  r.PriceRange,
	}
	if r.Category != nil {
		c := entity.PlaceCategory(*r.Category)
		in.Category = &c
	}
	return in
}

// NearQuery binds the geo part of a listing query.
type NearQuery struct {
	Longitude *float64 `form:"lng" binding:"omitempty,lng"`
	Latitude  *float64 `form:"lat" binding:"omitempty,lat"`
	Radius    float64  `form:"radius" binding:"omitempty,gt=0,max=100000"`
}

// ToGeoFilter returns nil when no point was given. Giving only one coordinate
// is a validation error.
func (q NearQuery) ToGeoFilter() (*entity.GeoFilter, error) {
	if q.Longitude == nil && q.Latitude == nil {
		return nil, nil
	}
	if q.Longitude == nil || q.Latitude == nil {
		return nil, entity.Validationf("lng and lat must be given together")
	}
	return &entity.GeoFilter{
		Point:        entity.NewGeoPoint(*q.Longitude, *q.Latitude),
		RadiusMeters: q.Radius,
	}, nil
}

type ListPlacesQuery struct {
	PaginationQuery
	NearQuery
	Category string `form:"category" binding:"omitempty,oneof=food cafe hostel pg library stationery medical entertainment shopping transport other"`
	Query    string `form:"q" binding:"omitempty,max=100"`
}

func (q ListPlacesQuery) ToFilter() (*contract.PlaceFilterOptions, error) {
	near, err := q.ToGeoFilter()
	if err != nil {
		return nil, err
	}
	opts := &contract.PlaceFilterOptions{
		Query:      strings.TrimSpace(q.Query),
		Near:       near,
		Pagination: q.ToPagination(),
	}
	if q.Category != "" {
		c := entity.PlaceCategory(q.Category)
		opts.Category = &c
	}
	return opts, nil
}
