package domain

import "time"

type ChecklistType string

const (
	ChecklistPreRental ChecklistType = "PRE_RENTAL"
	ChecklistHandover  ChecklistType = "HANDOVER"
	ChecklistReturn    ChecklistType = "RETURN"
)

type ChecklistItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Checklist is one staff checklist attached to a reservation. There is
// at most one row per (reservation, type); saves are upserts. Version
// increments on every save and is checked on update so two staff saving
// concurrently cannot silently clobber each other.
type Checklist struct {
	ID            int32           `json:"id"`
	ReservationID int32           `json:"reservation_id"`
	Type          ChecklistType   `json:"type"`
	Items         []ChecklistItem `json:"items"`
	Notes         string          `json:"notes"`
	Mileage       string          `json:"mileage"` // required to complete a RETURN checklist
	CompletedBy   *int32          `json:"completed_by,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	Version       int32           `json:"version"`
	CreatedOn     string          `json:"created_on"`
	UpdatedOn     string          `json:"updated_on"`
}

// Completed reports whether the checklist has been marked complete.
func (c *Checklist) Completed() bool {
	return c.CompletedAt != nil
}
