package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestTripPatch_AppliesOnlySuppliedFields(t *testing.T) {
	trip := Trip{
		ID:     1,
		Status: TripPlanned,
		Notes:  "original",
	}

	arrival := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)
	patch := TripPatch{
		Status:         ptr(TripCompleted),
		ActualArrival:  &arrival,
		ActualFuelCost: ptr(420.50),
	}

	changed := patch.Apply(&trip)

	assert.True(t, changed)
	assert.Equal(t, TripCompleted, trip.Status)
	assert.Equal(t, &arrival, trip.ActualArrival)
	assert.Equal(t, 420.50, *trip.ActualFuelCost)
	// Untouched fields stay as they were.
	assert.Equal(t, "original", trip.Notes)
	assert.Nil(t, trip.ActualTollCost)
}

func TestTripPatch_EmptyPatchChangesNothing(t *testing.T) {
	trip := Trip{ID: 1, Status: TripInTransit}
	assert.False(t, TripPatch{}.Apply(&trip))
	assert.Equal(t, TripInTransit, trip.Status)
}

func TestMaintenancePatch(t *testing.T) {
	m := Maintenance{ID: 7, Type: MaintenancePreventive, Cost: 100}

	changed := MaintenancePatch{
		Cost:        ptr(250.0),
		IsCompleted: ptr(true),
	}.Apply(&m)

	assert.True(t, changed)
	assert.Equal(t, 250.0, m.Cost)
	assert.True(t, m.IsCompleted)
	assert.Equal(t, MaintenancePreventive, m.Type)
}

func TestTrip_CostHelpers(t *testing.T) {
	trip := Trip{
		ActualFuelCost:     ptr(100.0),
		ActualTollCost:     ptr(50.0),
		DailyAllowanceCost: ptr(30.0),
		FreightRevenue:     ptr(500.0),
	}

	assert.Equal(t, 180.0, trip.TotalActualCost())
	assert.Equal(t, 500.0, trip.Revenue())
	assert.Equal(t, 320.0, trip.Profit())

	// All-nil trip contributes zeros, not panics.
	empty := Trip{}
	assert.Zero(t, empty.TotalActualCost())
	assert.Zero(t, empty.Profit())
}
