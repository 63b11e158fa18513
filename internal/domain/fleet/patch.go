package fleet

import "time"

// TripPatch is a typed partial update: only non-nil fields are applied.
// This replaces generic field-by-field reflection with an explicit merge,
// so a review can see exactly which fields a caller may touch.
type TripPatch struct {
	Status          *TripStatus
	ActualDeparture *time.Time
	ActualArrival   *time.Time
	ActualFuelCost  *float64
	ActualTollCost  *float64
	DailyAllowance  *float64
	OtherCosts      *float64
	FreightRevenue  *float64
	Notes           *string
}

// Apply merges the patch into the trip and reports whether anything changed.
func (p TripPatch) Apply(t *Trip) bool {
	changed := false
	if p.Status != nil && *p.Status != t.Status {
		t.Status = *p.Status
		changed = true
	}
	if p.ActualDeparture != nil {
		t.ActualDeparture = p.ActualDeparture
		changed = true
	}
	if p.ActualArrival != nil {
		t.ActualArrival = p.ActualArrival
		changed = true
	}
	if p.ActualFuelCost != nil {
		t.ActualFuelCost = p.ActualFuelCost
		changed = true
	}
	if p.ActualTollCost != nil {
		t.ActualTollCost = p.ActualTollCost
		changed = true
	}
	if p.DailyAllowance != nil {
		t.DailyAllowanceCost = p.DailyAllowance
		changed = true
	}
	if p.OtherCosts != nil {
		t.OtherCosts = p.OtherCosts
		changed = true
	}
	if p.FreightRevenue != nil {
		t.FreightRevenue = p.FreightRevenue
		changed = true
	}
	if p.Notes != nil && *p.Notes != t.Notes {
		t.Notes = *p.Notes
		changed = true
	}
	return changed
}

// MaintenancePatch is the typed partial update for maintenance records.
type MaintenancePatch struct {
	Type        *MaintenanceType
	Date        *time.Time
	Cost        *float64
	Description *string
	IsCompleted *bool
}

// Apply merges the patch into the record and reports whether anything changed.
func (p MaintenancePatch) Apply(m *Maintenance) bool {
	changed := false
	if p.Type != nil && *p.Type != m.Type {
		m.Type = *p.Type
		changed = true
	}
	if p.Date != nil {
		m.Date = *p.Date
		changed = true
	}
	if p.Cost != nil && *p.Cost != m.Cost {
		m.Cost = *p.Cost
		changed = true
	}
	if p.Description != nil && *p.Description != m.Description {
		m.Description = *p.Description
		changed = true
	}
	if p.IsCompleted != nil && *p.IsCompleted != m.IsCompleted {
		m.IsCompleted = *p.IsCompleted
		changed = true
	}
	return changed
}
