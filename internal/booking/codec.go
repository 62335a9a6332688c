package booking

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"campervan-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// Wire representation of a draft line. Dates travel as yyyy-mm-dd
// strings and line arrays as JSON so the whole draft fits in a query
// string, which keeps the wizard resumable from a bookmarked URL.
type equipmentLineWire struct {
	LineID         string             `json:"line_id"`
	EquipmentID    int32              `json:"equipment_id"`
	Name           string             `json:"name,omitempty"`
	UnitPriceCents int32              `json:"unit_price_cents"`
	Quantity       int32              `json:"quantity"`
	PricingType    domain.PricingType `json:"pricing_type"`
}

type activityLineWire struct {
	LineID         string `json:"line_id"`
	ActivityID     int32  `json:"activity_id"`
	Name           string `json:"name,omitempty"`
	UnitPriceCents int32  `json:"unit_price_cents"`
	Date           string `json:"date"`
	Participants   int32  `json:"participants"`
}

// EncodeQuery serializes a draft into URL query parameters.
func EncodeQuery(d Draft) (url.Values, error) {
	v := url.Values{}
	v.Set("vehicle_id", strconv.FormatInt(int64(d.VehicleID), 10))
	if d.VehicleName != "" {
		v.Set("vehicle_name", d.VehicleName)
	}
	v.Set("price_per_day", strconv.FormatInt(int64(d.PricePerDayCents), 10))
	v.Set("start", d.Range.Start.Format(dateLayout))
	v.Set("end", d.Range.End.Format(dateLayout))

	if len(d.Equipment) > 0 {
		lines := make([]equipmentLineWire, 0, len(d.Equipment))
		for _, l := range d.Equipment {
			lines = append(lines, equipmentLineWire(l))
		}
		data, err := json.Marshal(lines)
		if err != nil {
			return nil, err
		}
		v.Set("equipment", string(data))
	}
	if len(d.Activities) > 0 {
		lines := make([]activityLineWire, 0, len(d.Activities))
		for _, l := range d.Activities {
			lines = append(lines, activityLineWire{
				LineID:         l.LineID,
				ActivityID:     l.ActivityID,
				Name:           l.Name,
				UnitPriceCents: l.UnitPriceCents,
				Date:           l.Date.Format(dateLayout),
				Participants:   l.Participants,
			})
		}
		data, err := json.Marshal(lines)
		if err != nil {
			return nil, err
		}
		v.Set("activities", string(data))
	}
	return v, nil
}

// DecodeQuery reconstructs a draft from query parameters, re-running the
// same validation the Add operations apply. A valid draft always decodes
// back from its own encoding.
func DecodeQuery(v url.Values) (Draft, error) {
	vehicleID, err := parseInt32(v.Get("vehicle_id"), "vehicle_id")
	if err != nil {
		return Draft{}, err
	}
	pricePerDay, err := parseInt32(v.Get("price_per_day"), "price_per_day")
	if err != nil {
		return Draft{}, err
	}
	start, err := parseDate(v.Get("start"), "start")
	if err != nil {
		return Draft{}, err
	}
	end, err := parseDate(v.Get("end"), "end")
	if err != nil {
		return Draft{}, err
	}

	draft, err := NewDraft(vehicleID, v.Get("vehicle_name"), pricePerDay, start, end)
	if err != nil {
		return Draft{}, err
	}

	if raw := v.Get("equipment"); raw != "" {
		var lines []equipmentLineWire
		if err := json.Unmarshal([]byte(raw), &lines); err != nil {
			return Draft{}, domain.NewValidationError("equipment", "malformed equipment lines: %v", err)
		}
		for _, l := range lines {
			draft, err = draft.AddEquipment(l.EquipmentID, l.Name, l.UnitPriceCents, l.Quantity, l.PricingType)
			if err != nil {
				return Draft{}, err
			}
			// Keep the original line id stable across steps.
			draft.Equipment[len(draft.Equipment)-1].LineID = l.LineID
		}
	}
	if raw := v.Get("activities"); raw != "" {
		var lines []activityLineWire
		if err := json.Unmarshal([]byte(raw), &lines); err != nil {
			return Draft{}, domain.NewValidationError("activities", "malformed activity lines: %v", err)
		}
		for _, l := range lines {
			date, err := parseDate(l.Date, "activities.date")
			if err != nil {
				return Draft{}, err
			}
			// Participant bounds were checked against the catalog when the
			// line was added; re-check only what the draft itself can know.
			if !draft.Range.Contains(date) {
				return Draft{}, domain.NewValidationError("activities.date", "must fall within the rental period (return day excluded)")
			}
			if l.Participants < 1 {
				return Draft{}, domain.NewValidationError("activities.participants", "must be at least 1")
			}
			if l.UnitPriceCents < 0 {
				return Draft{}, domain.NewValidationError("activities.unit_price", "must not be negative")
			}
			draft.Activities = append(draft.Activities, ActivityLine{
				LineID:         l.LineID,
				ActivityID:     l.ActivityID,
				Name:           l.Name,
				UnitPriceCents: l.UnitPriceCents,
				Date:           date,
				Participants:   l.Participants,
			})
		}
	}
	return draft, nil
}

func parseInt32(s, field string) (int32, error) {
	if s == "" {
		return 0, domain.NewValidationError(field, "is required")
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, domain.NewValidationError(field, "must be an integer")
	}
	return int32(n), nil
}

func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, domain.NewValidationError(field, "is required")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a yyyy-mm-dd date")
	}
	return t, nil
}
