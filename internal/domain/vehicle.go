package domain

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

type Vehicle struct {
	ID               int32         `json:"id"`
	Name             string        `json:"name"`
	Model            string        `json:"model"`
	Capacity         int32         `json:"capacity"`
	PricePerDayCents int32         `json:"price_per_day_cents"`
	Status           VehicleStatus `json:"status"`
	MileageKm        int32         `json:"mileage_km"`
	Description      string        `json:"description"`
	CreatedOn        string        `json:"created_on"`
	UpdatedOn        string        `json:"updated_on"`
}
