// Package booking implements the pure pricing and accumulation logic
// behind the rental wizard: a Draft collects a vehicle, a date range,
// equipment lines and activity lines, and prices them deterministically.
// Nothing in this package touches storage; persistence happens only when
// a finalized draft is handed to the reservation service.
package booking

import (
	"time"

	"github.com/google/uuid"

	"campervan-backend/internal/domain"
)

// DateRange is a rental period over calendar days. The end date is the
// return day and is excluded: days are counted over the half-open
// interval [Start, End).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// truncateDay drops the time-of-day component so day counting follows
// calendar-day boundaries, not elapsed 24h periods.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// utcDate rebuilds t's calendar date at midnight UTC. Day arithmetic
// runs on these so zone offsets and DST transitions (a 23h or 25h wall
// day) never shift the count.
func utcDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days returns the number of calendar days in [Start, End). Always >= 1
// for a valid range.
func (r DateRange) Days() int32 {
	return int32(utcDate(r.End).Sub(utcDate(r.Start)).Hours() / 24)
}

// Contains reports whether date falls within [Start, End). The end date
// itself is not a bookable activity date.
func (r DateRange) Contains(date time.Time) bool {
	d := utcDate(date)
	return !d.Before(utcDate(r.Start)) && d.Before(utcDate(r.End))
}

// EquipmentLine is one equipment selection on a draft. PER_UNIT lines
// cost unit x quantity; PER_DAY lines cost unit x quantity x days.
type EquipmentLine struct {
	LineID         string
	EquipmentID    int32
	Name           string
	UnitPriceCents int32
	Quantity       int32
	PricingType    domain.PricingType
}

// ActivityLine is one activity selection on a draft, priced as a single
// occurrence: unit x participants, no day multiplier.
type ActivityLine struct {
	LineID         string
	ActivityID     int32
	Name           string
	UnitPriceCents int32
	Date           time.Time
	Participants   int32
}

// Draft is the ephemeral reservation being assembled by the wizard. All
// operations are copy-on-write: they return a new Draft or an error and
// never mutate the receiver, so a failed operation leaves the caller's
// draft untouched.
type Draft struct {
	VehicleID        int32
	VehicleName      string
	PricePerDayCents int32
	Range            DateRange
	Equipment        []EquipmentLine
	Activities       []ActivityLine
}

// Totals is the price breakdown of a draft.
type Totals struct {
	VehicleCents   int32 `json:"vehicle_cents"`
	EquipmentCents int32 `json:"equipment_cents"`
	ActivityCents  int32 `json:"activity_cents"`
	GrandCents     int32 `json:"grand_cents"`
}

// ReservationInput is the payload handed to the persistence boundary at
// final confirmation. Tax is computed from a caller-supplied rate; the
// accumulator itself carries no tax policy.
type ReservationInput struct {
	VehicleID      int32
	StartDate      string
	EndDate        string
	Days           int32
	EquipmentLines []domain.EquipmentLine
	ActivityLines  []domain.ActivityLine
	SubtotalCents  int32
	TaxCents       int32
	TotalCents     int32
}

// NewDraft starts a draft from a vehicle selection and date range.
func NewDraft(vehicleID int32, vehicleName string, pricePerDayCents int32, start, end time.Time) (Draft, error) {
	if pricePerDayCents < 0 {
		return Draft{}, domain.NewValidationError("price_per_day", "must not be negative")
	}
	if !truncateDay(start).Before(truncateDay(end)) {
		return Draft{}, domain.NewValidationError("date_range", "end date must be after start date")
	}
	return Draft{
		VehicleID:        vehicleID,
		VehicleName:      vehicleName,
		PricePerDayCents: pricePerDayCents,
		Range:            DateRange{Start: truncateDay(start), End: truncateDay(end)},
	}, nil
}

// AddEquipment appends an equipment line. Quantity zero is accepted (it
// contributes nothing); negative quantity or price is rejected. Stock
// sufficiency against the catalog is the reservation service's concern.
func (d Draft) AddEquipment(equipmentID int32, name string, unitPriceCents, quantity int32, pricingType domain.PricingType) (Draft, error) {
	if quantity < 0 {
		return d, domain.NewValidationError("quantity", "must not be negative")
	}
	if unitPriceCents < 0 {
		return d, domain.NewValidationError("unit_price", "must not be negative")
	}
	if pricingType != domain.PricingPerDay && pricingType != domain.PricingPerUnit {
		return d, domain.NewValidationError("pricing_type", "unknown pricing type %q", pricingType)
	}
	line := EquipmentLine{
		LineID:         uuid.NewString(),
		EquipmentID:    equipmentID,
		Name:           name,
		UnitPriceCents: unitPriceCents,
		Quantity:       quantity,
		PricingType:    pricingType,
	}
	out := d
	out.Equipment = append(append([]EquipmentLine(nil), d.Equipment...), line)
	return out, nil
}

// AddActivity appends an activity line. The date must fall inside
// [start, end) and participants inside [min, max]; zero bounds fall back
// to the catalog defaults. The same activity on different dates forms
// independent lines.
func (d Draft) AddActivity(activityID int32, name string, unitPriceCents int32, date time.Time, participants, minParticipants, maxParticipants int32) (Draft, error) {
	if unitPriceCents < 0 {
		return d, domain.NewValidationError("unit_price", "must not be negative")
	}
	if !d.Range.Contains(date) {
		return d, domain.NewValidationError("date", "must fall within the rental period (return day excluded)")
	}
	if minParticipants <= 0 {
		minParticipants = domain.DefaultMinParticipants
	}
	if maxParticipants <= 0 {
		maxParticipants = domain.DefaultMaxParticipants
	}
	if participants < minParticipants || participants > maxParticipants {
		return d, domain.NewValidationError("participants", "must be between %d and %d", minParticipants, maxParticipants)
	}
	line := ActivityLine{
		LineID:         uuid.NewString(),
		ActivityID:     activityID,
		Name:           name,
		UnitPriceCents: unitPriceCents,
		Date:           truncateDay(date),
		Participants:   participants,
	}
	out := d
	out.Activities = append(append([]ActivityLine(nil), d.Activities...), line)
	return out, nil
}

// RemoveLine removes the equipment or activity line with the given id.
// Removing an unknown id is a no-op, not an error.
func (d Draft) RemoveLine(lineID string) Draft {
	out := d
	out.Equipment = nil
	for _, l := range d.Equipment {
		if l.LineID != lineID {
			out.Equipment = append(out.Equipment, l)
		}
	}
	out.Activities = nil
	for _, l := range d.Activities {
		if l.LineID != lineID {
			out.Activities = append(out.Activities, l)
		}
	}
	return out
}

// Totals prices the draft. Pure and deterministic.
func (d Draft) Totals() Totals {
	days := d.Range.Days()
	t := Totals{VehicleCents: d.PricePerDayCents * days}
	for _, l := range d.Equipment {
		switch l.PricingType {
		case domain.PricingPerDay:
			t.EquipmentCents += l.UnitPriceCents * l.Quantity * days
		default:
			t.EquipmentCents += l.UnitPriceCents * l.Quantity
		}
	}
	for _, l := range d.Activities {
		t.ActivityCents += l.UnitPriceCents * l.Participants
	}
	t.GrandCents = t.VehicleCents + t.EquipmentCents + t.ActivityCents
	return t
}

// Finalize converts the draft into the reservation payload. The tax rate
// is expressed in basis points (e.g. 1000 = 10%) and applied with
// truncating integer division.
func (d Draft) Finalize(taxRateBasisPoints int32) ReservationInput {
	totals := d.Totals()
	tax := totals.GrandCents * taxRateBasisPoints / 10000

	equipment := make([]domain.EquipmentLine, 0, len(d.Equipment))
	for _, l := range d.Equipment {
		equipment = append(equipment, domain.EquipmentLine{
			LineID:         l.LineID,
			EquipmentID:    l.EquipmentID,
			Name:           l.Name,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
			PricingType:    l.PricingType,
		})
	}
	activities := make([]domain.ActivityLine, 0, len(d.Activities))
	for _, l := range d.Activities {
		activities = append(activities, domain.ActivityLine{
			LineID:         l.LineID,
			ActivityID:     l.ActivityID,
			Name:           l.Name,
			UnitPriceCents: l.UnitPriceCents,
			Date:           l.Date.Format(dateLayout),
			Participants:   l.Participants,
		})
	}

	return ReservationInput{
		VehicleID:      d.VehicleID,
		StartDate:      d.Range.Start.Format(dateLayout),
		EndDate:        d.Range.End.Format(dateLayout),
		Days:           d.Range.Days(),
		EquipmentLines: equipment,
		ActivityLines:  activities,
		SubtotalCents:  totals.GrandCents,
		TaxCents:       tax,
		TotalCents:     totals.GrandCents + tax,
	}
}
