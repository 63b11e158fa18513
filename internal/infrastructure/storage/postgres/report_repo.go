package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"fretor/internal/domain/reports"
)

// ReportRepo implements reports.Repository. Filters arrive as optional
// request fields and become WHERE clauses here.
type ReportRepo struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates the report repository.
func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ reports.Repository = (*ReportRepo)(nil)

func (r *ReportRepo) TripRows(ctx context.Context, tenantID int64, req reports.Request) ([]reports.TripRow, error) {
	q := r.builder.
		Select(
			"t.id",
			"c.name AS client_name",
			"d.name AS driver_name",
			"v.plate AS vehicle_plate",
			"ro.name AS route_name",
			"to_char(t.departure_date, 'YYYY-MM-DD') AS departure_date",
			"t.status",
			"COALESCE(t.estimated_fuel_cost, 0) AS estimated_fuel_cost",
			"COALESCE(t.estimated_toll_cost, 0) AS estimated_toll_cost",
			"COALESCE(t.actual_fuel_cost, 0) AS actual_fuel_cost",
			"COALESCE(t.actual_toll_cost, 0) AS actual_toll_cost",
			"COALESCE(t.daily_allowance_cost, 0) AS daily_allowance_cost",
			"COALESCE(t.other_costs, 0) AS other_costs",
			"COALESCE(t.freight_revenue, 0) AS freight_revenue",
		).
		From("trips t").
		Join("clients c ON c.id = t.client_id").
		Join("drivers d ON d.id = t.driver_id").
		Join("vehicles v ON v.id = t.vehicle_id").
		Join("routes ro ON ro.id = t.route_id").
		Where(squirrel.Eq{"t.tenant_id": tenantID}).
		OrderBy("t.departure_date ASC", "t.id ASC")

	if req.StartDate != nil {
		q = q.Where(squirrel.GtOrEq{"t.departure_date": *req.StartDate})
	}
	if req.EndDate != nil {
		q = q.Where(squirrel.LtOrEq{"t.departure_date": *req.EndDate})
	}
	if req.ClientID != nil {
		q = q.Where(squirrel.Eq{"t.client_id": *req.ClientID})
	}
	if req.DriverID != nil {
		q = q.Where(squirrel.Eq{"t.driver_id": *req.DriverID})
	}
	if req.VehicleID != nil {
		q = q.Where(squirrel.Eq{"t.vehicle_id": *req.VehicleID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build trip rows query: %w", err)
	}

	var rows []reports.TripRow
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select trip rows: %w", err)
	}
	return rows, nil
}

func (r *ReportRepo) MaintenanceRows(ctx context.Context, tenantID int64, req reports.Request) ([]reports.MaintenanceRow, error) {
	q := r.builder.
		Select(
			"m.id",
			"v.plate AS vehicle_plate",
			"v.model AS vehicle_model",
			"m.maintenance_type",
			"to_char(m.maintenance_date, 'YYYY-MM-DD') AS maintenance_date",
			"m.cost",
			"COALESCE(m.description, '') AS description",
			"m.is_completed",
		).
		From("maintenances m").
		Join("vehicles v ON v.id = m.vehicle_id").
		Where(squirrel.Eq{"v.tenant_id": tenantID}).
		OrderBy("m.maintenance_date ASC", "m.id ASC")

	if req.StartDate != nil {
		q = q.Where(squirrel.GtOrEq{"m.maintenance_date": *req.StartDate})
	}
	if req.EndDate != nil {
		q = q.Where(squirrel.LtOrEq{"m.maintenance_date": *req.EndDate})
	}
	if req.VehicleID != nil {
		q = q.Where(squirrel.Eq{"m.vehicle_id": *req.VehicleID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build maintenance rows query: %w", err)
	}

	var rows []reports.MaintenanceRow
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select maintenance rows: %w", err)
	}
	return rows, nil
}
