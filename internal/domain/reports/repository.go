package reports

import "context"

// Repository loads the raw, already-joined rows a report is built from.
// Implementations apply the request filters in the query and must scope
// everything by tenant id.
type Repository interface {
	TripRows(ctx context.Context, tenantID int64, req Request) ([]TripRow, error)
	MaintenanceRows(ctx context.Context, tenantID int64, req Request) ([]MaintenanceRow, error)
}
