package domain

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusOnRent    ReservationStatus = "ON_RENT"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusOverdue   ReservationStatus = "OVERDUE"
)

// EquipmentLine is a price snapshot of one equipment selection, captured
// at reservation time. Cost calculations use these snapshots, not live
// catalog prices.
type EquipmentLine struct {
	LineID         string      `json:"line_id"`
	EquipmentID    int32       `json:"equipment_id"`
	Name           string      `json:"name,omitempty"`
	UnitPriceCents int32       `json:"unit_price_cents"`
	Quantity       int32       `json:"quantity"`
	PricingType    PricingType `json:"pricing_type"`
}

// ActivityLine is a price snapshot of one activity selection. Priced as
// a one-time occurrence (unit price x participants, no day multiplier).
type ActivityLine struct {
	LineID         string `json:"line_id"`
	ActivityID     int32  `json:"activity_id"`
	Name           string `json:"name,omitempty"`
	UnitPriceCents int32  `json:"unit_price_cents"`
	Date           string `json:"date"` // yyyy-mm-dd, within [start, end)
	Participants   int32  `json:"participants"`
}

type Reservation struct {
	ID             int32             `json:"id"`
	Number         string            `json:"number"` // external reference, uuid
	CustomerID     int32             `json:"customer_id"`
	VehicleID      int32             `json:"vehicle_id"`
	StartDate      string            `json:"start_date"` // yyyy-mm-dd
	EndDate        string            `json:"end_date"`   // yyyy-mm-dd, exclusive return day
	Days           int32             `json:"days"`
	EquipmentLines []EquipmentLine   `json:"equipment_lines"`
	ActivityLines  []ActivityLine    `json:"activity_lines"`
	SubtotalCents  int32             `json:"subtotal_cents"`
	TaxCents       int32             `json:"tax_cents"`
	TotalCents     int32             `json:"total_cents"`
	Status         ReservationStatus `json:"status"`
	Notes          string            `json:"notes"`
	CreatedOn      string            `json:"created_on"`
	UpdatedOn      string            `json:"updated_on"`
}
