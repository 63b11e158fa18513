package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"fretor/internal/domain/analytics"
)

// AnalyticsRepo implements analytics.Repository with aggregate queries. The
// windowing happens in SQL; the service only receives totals.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepo creates the analytics repository.
func NewAnalyticsRepo(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

var _ analytics.Repository = (*AnalyticsRepo)(nil)

func (r *AnalyticsRepo) CountClientsCreatedBefore(ctx context.Context, tenantID int64, before time.Time) (int64, error) {
	var count int64
	err := pgxscan.Get(ctx, r.pool, &count, `
		SELECT COUNT(*) FROM clients
		WHERE tenant_id = $1 AND created_at < $2
	`, tenantID, before)
	if err != nil {
		return 0, fmt.Errorf("count clients created before: %w", err)
	}
	return count, nil
}

// Retention windows by the trip's creation timestamp and counts every client
// with activity, whether or not the client itself predates the window.
const clientsWithTripsQuery = `
	SELECT COUNT(DISTINCT client_id)
	FROM trips
	WHERE tenant_id = $1 AND created_at >= $2
`

func (r *AnalyticsRepo) CountClientsWithTripsSince(ctx context.Context, tenantID int64, since time.Time) (int64, error) {
	var count int64
	err := pgxscan.Get(ctx, r.pool, &count, clientsWithTripsQuery, tenantID, since)
	if err != nil {
		return 0, fmt.Errorf("count clients with trips: %w", err)
	}
	return count, nil
}

func (r *AnalyticsRepo) CountVehicles(ctx context.Context, tenantID int64) (int64, error) {
	var count int64
	err := pgxscan.Get(ctx, r.pool, &count, `
		SELECT COUNT(*) FROM vehicles WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return count, nil
}

func (r *AnalyticsRepo) CountVehiclesUsedSince(ctx context.Context, tenantID int64, since time.Time) (int64, error) {
	var count int64
	err := pgxscan.Get(ctx, r.pool, &count, `
		SELECT COUNT(DISTINCT vehicle_id)
		FROM trips
		WHERE tenant_id = $1 AND departure_date >= $2
	`, tenantID, since)
	if err != nil {
		return 0, fmt.Errorf("count vehicles used: %w", err)
	}
	return count, nil
}

const completedTripTotalsQuery = `
	SELECT
		COALESCE(SUM(
			COALESCE(t.actual_fuel_cost, 0) + COALESCE(t.actual_toll_cost, 0) +
			COALESCE(t.daily_allowance_cost, 0) + COALESCE(t.other_costs, 0)
		), 0) AS total_cost,
		COALESCE(SUM(r.estimated_distance), 0) AS total_distance,
		COUNT(*) AS trips
	FROM trips t
	JOIN routes r ON r.id = t.route_id
	WHERE t.tenant_id = $1
	  AND t.status = 'completed'
	  AND t.departure_date >= $2
`

func (r *AnalyticsRepo) CompletedTripTotals(ctx context.Context, tenantID int64, since time.Time) (float64, float64, int64, error) {
	var row struct {
		TotalCost     float64 `db:"total_cost"`
		TotalDistance float64 `db:"total_distance"`
		Trips         int64   `db:"trips"`
	}
	err := pgxscan.Get(ctx, r.pool, &row, completedTripTotalsQuery, tenantID, since)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("completed trip totals: %w", err)
	}
	return row.TotalCost, row.TotalDistance, row.Trips, nil
}

func (r *AnalyticsRepo) RevenueBetween(ctx context.Context, tenantID int64, from, to time.Time) (float64, error) {
	var revenue float64
	err := pgxscan.Get(ctx, r.pool, &revenue, `
		SELECT COALESCE(SUM(freight_revenue), 0)
		FROM trips
		WHERE tenant_id = $1
		  AND departure_date >= $2 AND departure_date < $3
	`, tenantID, from, to)
	if err != nil {
		return 0, fmt.Errorf("revenue between: %w", err)
	}
	return revenue, nil
}

func (r *AnalyticsRepo) ArrivalOutcomesSince(ctx context.Context, tenantID int64, since time.Time) (int64, int64, error) {
	var row struct {
		OnTime  int64 `db:"on_time"`
		Delayed int64 `db:"delayed"`
	}
	err := pgxscan.Get(ctx, r.pool, &row, `
		SELECT
			COUNT(*) FILTER (WHERE actual_arrival <= estimated_arrival) AS on_time,
			COUNT(*) FILTER (WHERE actual_arrival > estimated_arrival) AS delayed
		FROM trips
		WHERE tenant_id = $1
		  AND status = 'completed'
		  AND departure_date >= $2
		  AND actual_arrival IS NOT NULL
		  AND estimated_arrival IS NOT NULL
	`, tenantID, since)
	if err != nil {
		return 0, 0, fmt.Errorf("arrival outcomes: %w", err)
	}
	return row.OnTime, row.Delayed, nil
}

func (r *AnalyticsRepo) MaintenanceCostsByType(ctx context.Context, tenantID int64, since time.Time) (float64, float64, error) {
	var row struct {
		Preventive float64 `db:"preventive"`
		Corrective float64 `db:"corrective"`
	}
	err := pgxscan.Get(ctx, r.pool, &row, `
		SELECT
			COALESCE(SUM(m.cost) FILTER (WHERE m.maintenance_type = 'preventive'), 0) AS preventive,
			COALESCE(SUM(m.cost) FILTER (WHERE m.maintenance_type = 'corrective'), 0) AS corrective
		FROM maintenances m
		JOIN vehicles v ON v.id = m.vehicle_id
		WHERE v.tenant_id = $1 AND m.maintenance_date >= $2
	`, tenantID, since)
	if err != nil {
		return 0, 0, fmt.Errorf("maintenance costs by type: %w", err)
	}
	return row.Preventive, row.Corrective, nil
}

func (r *AnalyticsRepo) DriverStatsSince(ctx context.Context, tenantID int64, since time.Time) ([]analytics.DriverStatRow, error) {
	var rows []analytics.DriverStatRow
	// Inner join: drivers without trips in the window are excluded.
	err := pgxscan.Select(ctx, r.pool, &rows, `
		SELECT
			d.id AS driver_id,
			d.name AS driver_name,
			COUNT(t.id) AS total_trips,
			COUNT(t.id) FILTER (WHERE t.status = 'completed') AS completed_trips,
			COALESCE(SUM(t.freight_revenue), 0) AS total_revenue,
			COALESCE(AVG(t.actual_fuel_cost), 0) AS avg_fuel_cost
		FROM drivers d
		JOIN trips t ON t.driver_id = d.id AND t.departure_date >= $2
		WHERE d.tenant_id = $1
		GROUP BY d.id, d.name
		ORDER BY completed_trips DESC, d.id ASC
	`, tenantID, since)
	if err != nil {
		return nil, fmt.Errorf("driver stats: %w", err)
	}
	return rows, nil
}

func (r *AnalyticsRepo) ClientStatsSince(ctx context.Context, tenantID int64, since time.Time) ([]analytics.ClientStatRow, error) {
	var rows []analytics.ClientStatRow
	err := pgxscan.Select(ctx, r.pool, &rows, `
		SELECT
			c.id AS client_id,
			c.name AS client_name,
			COUNT(t.id) AS total_trips,
			COALESCE(SUM(t.freight_revenue), 0) AS total_revenue,
			COALESCE(SUM(
				COALESCE(t.actual_fuel_cost, 0) + COALESCE(t.actual_toll_cost, 0) +
				COALESCE(t.daily_allowance_cost, 0) + COALESCE(t.other_costs, 0)
			), 0) AS total_cost
		FROM clients c
		JOIN trips t ON t.client_id = c.id AND t.departure_date >= $2
		WHERE c.tenant_id = $1
		GROUP BY c.id, c.name
		ORDER BY (COALESCE(SUM(t.freight_revenue), 0) - COALESCE(SUM(
			COALESCE(t.actual_fuel_cost, 0) + COALESCE(t.actual_toll_cost, 0) +
			COALESCE(t.daily_allowance_cost, 0) + COALESCE(t.other_costs, 0)
		), 0)) DESC, c.id ASC
	`, tenantID, since)
	if err != nil {
		return nil, fmt.Errorf("client stats: %w", err)
	}
	return rows, nil
}

func (r *AnalyticsRepo) VehicleMaintenanceCostsSince(ctx context.Context, tenantID int64, since time.Time) ([]analytics.VehicleMaintenanceCost, error) {
	var rows []analytics.VehicleMaintenanceCost
	err := pgxscan.Select(ctx, r.pool, &rows, `
		SELECT
			v.id AS vehicle_id,
			v.plate AS vehicle_plate,
			COALESCE(SUM(m.cost), 0) AS total_maintenance_cost,
			COALESCE(SUM(m.cost) FILTER (WHERE m.maintenance_type = 'preventive'), 0) AS preventive_cost,
			COALESCE(SUM(m.cost) FILTER (WHERE m.maintenance_type = 'corrective'), 0) AS corrective_cost,
			COUNT(m.id) AS maintenance_count
		FROM vehicles v
		JOIN maintenances m ON m.vehicle_id = v.id AND m.maintenance_date >= $2
		WHERE v.tenant_id = $1
		GROUP BY v.id, v.plate
		ORDER BY total_maintenance_cost DESC, v.id ASC
	`, tenantID, since)
	if err != nil {
		return nil, fmt.Errorf("vehicle maintenance costs: %w", err)
	}
	return rows, nil
}
