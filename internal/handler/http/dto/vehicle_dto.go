package dto

import (
	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type CreateVehicleRequest struct {
	VehicleType   string           `json:"vehicle_type" binding:"required,oneof=bicycle bike scooter car"`
	Brand         string           `json:"brand" binding:"max=60"`
	Model         string           `json:"model" binding:"max=60"`
	RentPerHour   float64          `json:"rent_per_hour" binding:"min=0"`
	RentPerDay    float64          `json:"rent_per_day" binding:"min=0"`
	Location      *LocationRequest `json:"location" binding:"required"`
	PickupAddress string           `json:"pickup_address" binding:"max=300"`
	Contact       string           `json:"contact" binding:"max=100"`
	IsAvailable   *bool            `json:"is_available"`
}

func (r CreateVehicleRequest) ToInput() usecasecontract.VehicleInput {
	vt := entity.VehicleType(r.VehicleType)
	return usecasecontract.VehicleInput{
		VehicleType:   &vt,
		Brand:         &r.Brand,
		Model:         &r.Model,
		RentPerHour:   &r.RentPerHour,
		RentPerDay:    &r.RentPerDay,
		Location:      r.Location.toGeoPoint(),
		PickupAddress: &r.PickupAddress,
		Contact:       &r.Contact,
		IsAvailable:   r.IsAvailable,
	}
}

type UpdateVehicleRequest struct {
	VehicleType   *string          `json:"vehicle_type" binding:"omitempty,oneof=bicycle bike scooter car"`
	Brand         *string          `json:"brand" binding:"omitempty,max=60"`
	Model         *string          `json:"model" binding:"omitempty,max=60"`
	RentPerHour   *float64         `json:"rent_per_hour" binding:"omitempty,min=0"`
	RentPerDay    *float64         `json:"rent_per_day" binding:"omitempty,min=0"`
	Location      *LocationRequest `json:"location"`
	PickupAddress *string          `json:"pickup_address" binding:"omitempty,max=300"`
	Contact       *string          `json:"contact" binding:"omitempty,max=100"`
	IsAvailable   *bool            `json:"is_available"`
}

func (r UpdateVehicleRequest) ToInput() usecasecontract.VehicleInput {
	in := usecasecontract.VehicleInput{
		Brand:         r.Brand,
		Model:         r.Model,
		RentPerHour:   r.RentPerHour,
		RentPerDay:    r.RentPerDay,
		Location:      r.Location.toGeoPoint(),
		PickupAddress: r.PickupAddress,
		Contact:       r.Contact,
		IsAvailable:   r.IsAvailable,
	}
	if r.VehicleType != nil {
		vt := entity.VehicleType(*r.VehicleType)
		in.VehicleType = &vt
	}
	return in
}

type ListVehiclesQuery struct {
	PaginationQuery
	NearQuery
	VehicleType   string `form:"type" binding:"omitempty,oneof=bicycle bike scooter car"`
	AvailableOnly bool   `form:"available"`
}

func (q ListVehiclesQuery) ToFilter() (*contract.VehicleFilterOptions, error) {
	near, err := q.ToGeoFilter()
	if err != nil {
		return nil, err
	}
	opts := &contract.VehicleFilterOptions{
		AvailableOnly: q.AvailableOnly,
		Near:          near,
		Pagination:    q.ToPagination(),
	}
	if q.VehicleType != "" {
		vt := entity.VehicleType(q.VehicleType)
		opts.VehicleType = &vt
	}
	return opts, nil
}
