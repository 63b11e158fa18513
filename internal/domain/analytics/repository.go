package analytics

import (
	"context"
	"time"
)

// DriverStatRow is one driver's raw aggregate from storage. Only drivers
// with at least one trip in the window appear (inner join through trips).
type DriverStatRow struct {
	DriverID       int64   `db:"driver_id"`
	DriverName     string  `db:"driver_name"`
	TotalTrips     int64   `db:"total_trips"`
	CompletedTrips int64   `db:"completed_trips"`
	TotalRevenue   float64 `db:"total_revenue"`
	AvgFuelCost    float64 `db:"avg_fuel_cost"`
}

// ClientStatRow is one client's raw revenue/cost aggregate from storage.
type ClientStatRow struct {
	ClientID     int64   `db:"client_id"`
	ClientName   string  `db:"client_name"`
	TotalTrips   int64   `db:"total_trips"`
	TotalRevenue float64 `db:"total_revenue"`
	TotalCost    float64 `db:"total_cost"`
}

// Repository is the read-only data access the engine needs. Every method is
// scoped by tenant id; no implementation may return rows belonging to a
// different tenant.
type Repository interface {
	// Retention. The activity window is the trip's creation timestamp and
	// counts every client with a trip in it, not only pre-window clients.
	CountClientsCreatedBefore(ctx context.Context, tenantID int64, before time.Time) (int64, error)
	CountClientsWithTripsSince(ctx context.Context, tenantID int64, since time.Time) (int64, error)

	// Fleet occupation
	CountVehicles(ctx context.Context, tenantID int64) (int64, error)
	CountVehiclesUsedSince(ctx context.Context, tenantID int64, since time.Time) (int64, error)

	// Cost per km, over completed trips only
	CompletedTripTotals(ctx context.Context, tenantID int64, since time.Time) (cost, distance float64, trips int64, err error)

	// Earnings projection
	RevenueBetween(ctx context.Context, tenantID int64, from, to time.Time) (float64, error)

	// On-time delivery; only completed trips with both arrivals present count
	ArrivalOutcomesSince(ctx context.Context, tenantID int64, since time.Time) (onTime, delayed int64, err error)

	// Maintenance split, scoped through the vehicle's tenant
	MaintenanceCostsByType(ctx context.Context, tenantID int64, since time.Time) (preventive, corrective float64, err error)

	// Rankings and driver metrics
	DriverStatsSince(ctx context.Context, tenantID int64, since time.Time) ([]DriverStatRow, error)
	ClientStatsSince(ctx context.Context, tenantID int64, since time.Time) ([]ClientStatRow, error)
	VehicleMaintenanceCostsSince(ctx context.Context, tenantID int64, since time.Time) ([]VehicleMaintenanceCost, error)
}
