package domain

// PricingType controls how an equipment line is charged: flat per unit,
// or per unit per rental day.
type PricingType string

const (
	PricingPerDay  PricingType = "PER_DAY"
	PricingPerUnit PricingType = "PER_UNIT"
)

type Equipment struct {
	ID             int32       `json:"id"`
	Name           string      `json:"name"`
	UnitPriceCents int32       `json:"unit_price_cents"`
	PricingType    PricingType `json:"pricing_type"`
	Stock          int32       `json:"stock"`
	AvailableStock int32       `json:"available_stock"`
	Description    string      `json:"description"`
	CreatedOn      string      `json:"created_on"`
	UpdatedOn      string      `json:"updated_on"`
}
