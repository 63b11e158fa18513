package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fretor/internal/domain/analytics"
)

type fakeDashRepo struct {
	status    StatusCounts
	entities  EntityCounts
	estimated float64
	actual    float64
	recent    []RecentTrip

	// financials maps bucket start (zero time for lifetime) to totals.
	revenue map[time.Time]float64
	costs   map[time.Time]float64

	bucketsAsked []time.Time
}

func (f *fakeDashRepo) TripStatusCounts(context.Context, int64) (StatusCounts, error) {
	return f.status, nil
}

func (f *fakeDashRepo) EntityCounts(context.Context, int64) (EntityCounts, error) {
	return f.entities, nil
}

func (f *fakeDashRepo) CostTotals(context.Context, int64) (float64, float64, error) {
	return f.estimated, f.actual, nil
}

func (f *fakeDashRepo) RecentTrips(context.Context, int64, int) ([]RecentTrip, error) {
	return f.recent, nil
}

func (f *fakeDashRepo) FinancialTotalsBetween(_ context.Context, _ int64, from, _ time.Time) (float64, float64, error) {
	f.bucketsAsked = append(f.bucketsAsked, from)
	return f.revenue[from], f.costs[from], nil
}

// fakeAnalyticsRepo satisfies analytics.Repository with only the methods the
// dashboard exercises returning data.
type fakeAnalyticsRepo struct {
	drivers     []analytics.DriverStatRow
	clients     []analytics.ClientStatRow
	maintenance []analytics.VehicleMaintenanceCost
}

func (f *fakeAnalyticsRepo) CountClientsCreatedBefore(context.Context, int64, time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeAnalyticsRepo) CountClientsWithTripsSince(context.Context, int64, time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeAnalyticsRepo) CountVehicles(context.Context, int64) (int64, error) { return 0, nil }
func (f *fakeAnalyticsRepo) CountVehiclesUsedSince(context.Context, int64, time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeAnalyticsRepo) CompletedTripTotals(context.Context, int64, time.Time) (float64, float64, int64, error) {
	return 0, 0, 0, nil
}
func (f *fakeAnalyticsRepo) RevenueBetween(context.Context, int64, time.Time, time.Time) (float64, error) {
	return 0, nil
}
func (f *fakeAnalyticsRepo) ArrivalOutcomesSince(context.Context, int64, time.Time) (int64, int64, error) {
	return 0, 0, nil
}
func (f *fakeAnalyticsRepo) MaintenanceCostsByType(context.Context, int64, time.Time) (float64, float64, error) {
	return 0, 0, nil
}
func (f *fakeAnalyticsRepo) DriverStatsSince(context.Context, int64, time.Time) ([]analytics.DriverStatRow, error) {
	return f.drivers, nil
}
func (f *fakeAnalyticsRepo) ClientStatsSince(context.Context, int64, time.Time) ([]analytics.ClientStatRow, error) {
	return f.clients, nil
}
func (f *fakeAnalyticsRepo) VehicleMaintenanceCostsSince(context.Context, int64, time.Time) ([]analytics.VehicleMaintenanceCost, error) {
	return f.maintenance, nil
}

var dashNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedDashNow() time.Time { return dashNow }

func TestStats(t *testing.T) {
	repo := &fakeDashRepo{
		status:    StatusCounts{Total: 10, Planned: 3, InTransit: 2, Completed: 4, Cancelled: 1},
		entities:  EntityCounts{Clients: 5, Drivers: 4, Vehicles: 3, Routes: 6},
		estimated: 1234.567,
		actual:    999.999,
		recent:    []RecentTrip{{ID: 42, ClientName: "Acme", Status: "completed"}},
	}
	svc := NewService(repo, analytics.NewService(&fakeAnalyticsRepo{}, fixedDashNow), fixedDashNow)

	got, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(10), got.TotalTrips)
	assert.Equal(t, int64(3), got.PlannedTrips)
	assert.Equal(t, int64(4), got.CompletedTrips)
	assert.Equal(t, int64(5), got.TotalClients)
	assert.Equal(t, int64(6), got.TotalRoutes)
	assert.Equal(t, 1234.57, got.TotalEstimatedCosts)
	assert.Equal(t, 1000.0, got.TotalActualCosts)
	require.Len(t, got.RecentTrips, 1)
	assert.Equal(t, int64(42), got.RecentTrips[0].ID)
}

func TestStats_NoRecentTripsYieldsEmptySlice(t *testing.T) {
	svc := NewService(&fakeDashRepo{}, analytics.NewService(&fakeAnalyticsRepo{}, fixedDashNow), fixedDashNow)

	got, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, got.RecentTrips)
	assert.Empty(t, got.RecentTrips)
}

func TestV2(t *testing.T) {
	repo := &fakeDashRepo{
		status:  StatusCounts{Total: 6, Planned: 1, InTransit: 1, Completed: 3, Cancelled: 1},
		revenue: map[time.Time]float64{{}: 10000},
		costs:   map[time.Time]float64{{}: 6000},
	}
	// Seed one trend bucket.
	bucket := dashNow.AddDate(0, 0, -30)
	repo.revenue[bucket] = 3000
	repo.costs[bucket] = 1000

	analyticsSvc := analytics.NewService(&fakeAnalyticsRepo{
		clients: []analytics.ClientStatRow{
			{ClientID: 1, ClientName: "Acme", TotalTrips: 3, TotalRevenue: 5000, TotalCost: 2000},
		},
		drivers: []analytics.DriverStatRow{
			{DriverID: 2, DriverName: "Ana", TotalTrips: 4, CompletedTrips: 3},
		},
		maintenance: []analytics.VehicleMaintenanceCost{
			{VehicleID: 9, VehiclePlate: "ABC-1234", TotalCost: 700},
		},
	}, fixedDashNow)
	svc := NewService(repo, analyticsSvc, fixedDashNow)

	got, err := svc.V2(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(6), got.TotalTrips)
	assert.Equal(t, int64(3), got.TripsByStatus["completed"])
	assert.Equal(t, 10000.0, got.TotalRevenue)
	assert.Equal(t, 4000.0, got.TotalProfit)
	assert.Equal(t, 40.0, got.ProfitMargin)

	require.Len(t, got.TopClients, 1)
	assert.Equal(t, 3000.0, got.TopClients[0].TotalProfit)
	require.Len(t, got.TopDrivers, 1)
	assert.Equal(t, 75.0, got.TopDrivers[0].CompletionRate)
	require.Len(t, got.MaintenanceCosts, 1)

	// Trend is three 30-day buckets, oldest first.
	require.Len(t, got.ProfitabilityTrend, 3)
	last := got.ProfitabilityTrend[2]
	assert.Equal(t, 3000.0, last.TotalRevenue)
	assert.Equal(t, 2000.0, last.TotalProfit)
	assert.Equal(t, bucket.Format("2006-01"), last.Period)
	// Untouched buckets are zero with zero margin, not NaN.
	assert.Zero(t, got.ProfitabilityTrend[0].ProfitMargin)
}
