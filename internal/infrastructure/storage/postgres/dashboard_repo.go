package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"fretor/internal/domain/dashboard"
)

// DashboardRepo implements dashboard.Repository.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepo creates the dashboard repository.
func NewDashboardRepo(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

var _ dashboard.Repository = (*DashboardRepo)(nil)

func (r *DashboardRepo) TripStatusCounts(ctx context.Context, tenantID int64) (dashboard.StatusCounts, error) {
	var row struct {
		Total     int64 `db:"total"`
		Planned   int64 `db:"planned"`
		InTransit int64 `db:"in_transit"`
		Completed int64 `db:"completed"`
		Cancelled int64 `db:"cancelled"`
	}
	err := pgxscan.Get(ctx, r.pool, &row, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'planned') AS planned,
			COUNT(*) FILTER (WHERE status = 'in_transit') AS in_transit,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled
		FROM trips
		WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return dashboard.StatusCounts{}, fmt.Errorf("trip status counts: %w", err)
	}
	return dashboard.StatusCounts{
		Total:     row.Total,
		Planned:   row.Planned,
		InTransit: row.InTransit,
		Completed: row.Completed,
		Cancelled: row.Cancelled,
	}, nil
}

func (r *DashboardRepo) EntityCounts(ctx context.Context, tenantID int64) (dashboard.EntityCounts, error) {
	var row struct {
		Clients  int64 `db:"clients"`
		Drivers  int64 `db:"drivers"`
		Vehicles int64 `db:"vehicles"`
		Routes   int64 `db:"routes"`
	}
	err := pgxscan.Get(ctx, r.pool, &row, `
		SELECT
			(SELECT COUNT(*) FROM clients WHERE tenant_id = $1) AS clients,
			(SELECT COUNT(*) FROM drivers WHERE tenant_id = $1) AS drivers,
			(SELECT COUNT(*) FROM vehicles WHERE tenant_id = $1) AS vehicles,
			(SELECT COUNT(*) FROM routes WHERE tenant_id = $1) AS routes
	`, tenantID)
	if err != nil {
		return dashboard.EntityCounts{}, fmt.Errorf("entity counts: %w", err)
	}
	return dashboard.EntityCounts{
		Clients:  row.Clients,
		Drivers:  row.Drivers,
		Vehicles: row.Vehicles,
		Routes:   row.Routes,
	}, nil
}

func (r *DashboardRepo) CostTotals(ctx context.Context, tenantID int64) (float64, float64, error) {
	var row struct {
		Estimated float64 `db:"estimated"`
		Actual    float64 `db:"actual"`
	}
	err := pgxscan.Get(ctx, r.pool, &row, `
		SELECT
			COALESCE(SUM(COALESCE(estimated_fuel_cost, 0) + COALESCE(estimated_toll_cost, 0)), 0) AS estimated,
			COALESCE(SUM(COALESCE(actual_fuel_cost, 0) + COALESCE(actual_toll_cost, 0)), 0) AS actual
		FROM trips
		WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return 0, 0, fmt.Errorf("cost totals: %w", err)
	}
	return row.Estimated, row.Actual, nil
}

func (r *DashboardRepo) RecentTrips(ctx context.Context, tenantID int64, limit int) ([]dashboard.RecentTrip, error) {
	var rows []dashboard.RecentTrip
	err := pgxscan.Select(ctx, r.pool, &rows, `
		SELECT
			t.id,
			c.name AS client_name,
			d.name AS driver_name,
			v.plate AS vehicle_plate,
			t.status,
			to_char(t.departure_date, 'YYYY-MM-DD') AS departure_date,
			to_char(t.estimated_arrival, 'YYYY-MM-DD"T"HH24:MI:SS') AS estimated_arrival
		FROM trips t
		JOIN clients c ON c.id = t.client_id
		JOIN drivers d ON d.id = t.driver_id
		JOIN vehicles v ON v.id = t.vehicle_id
		WHERE t.tenant_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2
	`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent trips: %w", err)
	}
	return rows, nil
}

func (r *DashboardRepo) FinancialTotalsBetween(ctx context.Context, tenantID int64, from, to time.Time) (float64, float64, error) {
	var row struct {
		Revenue float64 `db:"revenue"`
		Costs   float64 `db:"costs"`
	}
	// Zero bounds mean an unbounded side.
	err := pgxscan.Get(ctx, r.pool, &row, `
		SELECT
			COALESCE(SUM(COALESCE(freight_revenue, 0)), 0) AS revenue,
			COALESCE(SUM(
				COALESCE(actual_fuel_cost, 0) + COALESCE(actual_toll_cost, 0) +
				COALESCE(daily_allowance_cost, 0) + COALESCE(other_costs, 0)
			), 0) AS costs
		FROM trips
		WHERE tenant_id = $1
		  AND ($2::timestamptz = 'epoch'::timestamptz OR departure_date >= $2)
		  AND ($3::timestamptz = 'epoch'::timestamptz OR departure_date < $3)
	`, tenantID, orEpoch(from), orEpoch(to))
	if err != nil {
		return 0, 0, fmt.Errorf("financial totals: %w", err)
	}
	return row.Revenue, row.Costs, nil
}

func orEpoch(t time.Time) time.Time {
	if t.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return t
}
