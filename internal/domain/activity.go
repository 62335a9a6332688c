package domain

// Default participant bounds applied when an activity does not specify
// its own.
const (
	DefaultMinParticipants = 1
	DefaultMaxParticipants = 10
)

type Activity struct {
	ID              int32  `json:"id"`
	Name            string `json:"name"`
	UnitPriceCents  int32  `json:"unit_price_cents"`
	MinParticipants int32  `json:"min_participants"`
	MaxParticipants int32  `json:"max_participants"`
	Active          bool   `json:"active"`
	Description     string `json:"description"`
	CreatedOn       string `json:"created_on"`
	UpdatedOn       string `json:"updated_on"`
}

// ParticipantBounds returns the activity's participant range, falling
// back to the defaults when a bound is unset.
func (a *Activity) ParticipantBounds() (min, max int32) {
	min, max = a.MinParticipants, a.MaxParticipants
	if min <= 0 {
		min = DefaultMinParticipants
	}
	if max <= 0 {
		max = DefaultMaxParticipants
	}
	return min, max
}
