package entity

import "time"

type VehicleType string

const (
	VehicleBicycle VehicleType = "bicycle"
	VehicleBike    VehicleType = "bike"
	VehicleScooter VehicleType = "scooter"
	VehicleCar     VehicleType = "car"
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleBicycle, VehicleBike, VehicleScooter, VehicleCar:
		return true
	}
	return false
}

// Vehicle is a rentable vehicle listed by its owner.
type Vehicle struct {
	ID            string      `bson:"_id,omitempty" json:"id"`
	OwnerID       string      `bson:"owner_id" json:"owner_id"`
	VehicleType   VehicleType `bson:"vehicle_type" json:"vehicle_type"`
	Brand         string      `bson:"brand" json:"brand"`
	Model         string      `bson:"model" json:"model"`
	RentPerHour   float64     `bson:"rent_per_hour" json:"rent_per_hour"`
	RentPerDay    float64     `bson:"rent_per_day" json:"rent_per_day"`
	Location      GeoPoint    `bson:"location" json:"location"`
	PickupAddress string      `bson:"pickup_address,omitempty" json:"pickup_address,omitempty"`
	Contact       string      `bson:"contact,omitempty" json:"contact,omitempty"`
	IsAvailable   bool        `bson:"is_available" json:"is_available"`
	CreatedAt     time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `bson:"updated_at" json:"updated_at"`
}
