// Package checklist holds the pure parts of the staff checkout/return
// workflow: the default item templates per checklist type, item
// toggling, and the completion predicates that gate reservation status
// transitions.
package checklist

import "campervan-backend/internal/domain"

var templates = map[domain.ChecklistType][]domain.ChecklistItem{
	domain.ChecklistPreRental: {
		{ID: "exterior_condition", Label: "Exterior inspected and photographed"},
		{ID: "interior_clean", Label: "Interior cleaned"},
		{ID: "fuel_full", Label: "Fuel tank full"},
		{ID: "water_tank", Label: "Fresh water tank filled"},
		{ID: "gas_bottle", Label: "Gas bottle level checked"},
		{ID: "battery_charged", Label: "Leisure battery charged"},
		{ID: "spare_tire", Label: "Spare tire and jack present"},
		{ID: "documents", Label: "Registration and insurance documents in glovebox"},
	},
	domain.ChecklistHandover: {
		{ID: "license_verified", Label: "Driver's license verified"},
		{ID: "contract_signed", Label: "Rental agreement signed"},
		{ID: "deposit_received", Label: "Security deposit received"},
		{ID: "walkthrough_done", Label: "Vehicle walkthrough completed with customer"},
		{ID: "equipment_loaded", Label: "Reserved equipment loaded and checked"},
		{ID: "keys_handed", Label: "Keys handed over"},
	},
	domain.ChecklistReturn: {
		{ID: "exterior_damage", Label: "Exterior checked for new damage"},
		{ID: "interior_damage", Label: "Interior checked for damage and missing items"},
		{ID: "equipment_returned", Label: "Rented equipment returned complete"},
		{ID: "fuel_level", Label: "Fuel level checked"},
		{ID: "waste_tank", Label: "Waste water tank emptied"},
		{ID: "keys_returned", Label: "Keys returned"},
		{ID: "deposit_settled", Label: "Deposit settled"},
	},
}

// ValidType reports whether t names a known checklist type.
func ValidType(t domain.ChecklistType) bool {
	_, ok := templates[t]
	return ok
}

// Template returns a fresh, unchecked item list for the given type.
func Template(t domain.ChecklistType) []domain.ChecklistItem {
	items := templates[t]
	out := make([]domain.ChecklistItem, len(items))
	copy(out, items)
	return out
}

// ToggleItem flips the checked flag of the item with the given id and
// returns the new item list. The input is not mutated; an unknown id
// returns an identical copy.
func ToggleItem(items []domain.ChecklistItem, itemID string) []domain.ChecklistItem {
	out := make([]domain.ChecklistItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == itemID {
			out[i].Checked = !out[i].Checked
		}
	}
	return out
}

// IsComplete reports whether the checklist may be marked complete:
// every item checked, and for RETURN checklists a recorded mileage as
// well. An empty item list is never complete.
func IsComplete(c *domain.Checklist) bool {
	if len(c.Items) == 0 {
		return false
	}
	for _, item := range c.Items {
		if !item.Checked {
			return false
		}
	}
	if c.Type == domain.ChecklistReturn && c.Mileage == "" {
		return false
	}
	return true
}
