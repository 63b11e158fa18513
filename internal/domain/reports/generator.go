package reports

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Document is a finished report dataset. The tabular view is what the excel
// renderer consumes; JSON renderers marshal the concrete struct.
type Document interface {
	// SheetName names the worksheet for tabular output.
	SheetName() string
	// Headers returns the tabular column headers.
	Headers() []string
	// TableRows returns the tabular data rows, one cell slice per row.
	TableRows() [][]any
}

// Generator turns a validated request into a report dataset.
type Generator struct {
	repo Repository
}

// NewGenerator creates a report dataset generator.
func NewGenerator(repo Repository) *Generator {
	return &Generator{repo: repo}
}

// Build collects the data for the request and shapes the dataset. The type
// is re-checked here: a job may carry a type that was valid at enqueue time
// only because validation was bypassed.
func (g *Generator) Build(ctx context.Context, tenantID int64, req Request) (Document, error) {
	switch req.Type {
	case TypeTrips:
		return g.buildTrips(ctx, tenantID, req)
	case TypeMaintenance:
		return g.buildMaintenance(ctx, tenantID, req)
	case TypeFinancial:
		return g.buildFinancial(ctx, tenantID, req)
	case TypeProfitability:
		return g.buildProfitability(req), nil
	default:
		return nil, fmt.Errorf("unsupported report type: %s", req.Type)
	}
}

func (g *Generator) buildTrips(ctx context.Context, tenantID int64, req Request) (*TripsReport, error) {
	rows, err := g.repo.TripRows(ctx, tenantID, req)
	if err != nil {
		return nil, fmt.Errorf("load trip rows: %w", err)
	}
	if rows == nil {
		rows = []TripRow{}
	}
	return &TripsReport{
		ReportType: TypeTrips,
		Filters:    filtersFrom(req),
		TotalTrips: len(rows),
		Trips:      rows,
	}, nil
}

func (g *Generator) buildMaintenance(ctx context.Context, tenantID int64, req Request) (*MaintenanceReport, error) {
	rows, err := g.repo.MaintenanceRows(ctx, tenantID, req)
	if err != nil {
		return nil, fmt.Errorf("load maintenance rows: %w", err)
	}
	if rows == nil {
		rows = []MaintenanceRow{}
	}
	return &MaintenanceReport{
		ReportType:        TypeMaintenance,
		Filters:           filtersFrom(req),
		TotalMaintenances: len(rows),
		Maintenances:      rows,
	}, nil
}

func (g *Generator) buildFinancial(ctx context.Context, tenantID int64, req Request) (*FinancialReport, error) {
	rows, err := g.repo.TripRows(ctx, tenantID, req)
	if err != nil {
		return nil, fmt.Errorf("load trip rows: %w", err)
	}

	var totalRevenue, totalCosts float64
	lines := make([]FinancialRow, 0, len(rows))
	for _, row := range rows {
		costs := row.ActualFuelCost + row.ActualTollCost + row.DailyAllowance + row.OtherCosts
		totalRevenue += row.FreightRevenue
		totalCosts += costs
		lines = append(lines, FinancialRow{
			ID:             row.ID,
			ClientName:     row.ClientName,
			FreightRevenue: money(row.FreightRevenue),
			TotalCosts:     money(costs),
			Profit:         money(row.FreightRevenue - costs),
		})
	}

	profit := totalRevenue - totalCosts
	var margin float64
	if totalRevenue > 0 {
		margin = profit / totalRevenue * 100
	}

	return &FinancialReport{
		ReportType: TypeFinancial,
		Filters:    filtersFrom(req),
		Summary: FinancialSummary{
			TotalRevenue: money(totalRevenue),
			TotalCosts:   money(totalCosts),
			TotalProfit:  money(profit),
			ProfitMargin: money(margin),
		},
		Trips: lines,
	}, nil
}

func (g *Generator) buildProfitability(req Request) *ProfitabilityReport {
	return &ProfitabilityReport{
		ReportType: TypeProfitability,
		Filters:    filtersFrom(req),
		Message:    "profitability report is not implemented yet",
	}
}

func money(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func (r *TripsReport) SheetName() string { return "Trips" }

func (r *TripsReport) Headers() []string {
	return []string{
		"ID", "Client", "Driver", "Vehicle", "Route", "Departure", "Status",
		"Est. Fuel", "Est. Toll", "Fuel", "Toll", "Allowance", "Other", "Revenue",
	}
}

func (r *TripsReport) TableRows() [][]any {
	rows := make([][]any, 0, len(r.Trips))
	for _, t := range r.Trips {
		rows = append(rows, []any{
			strconv.FormatInt(t.ID, 10), t.ClientName, t.DriverName, t.VehiclePlate,
			t.RouteName, t.DepartureDate, t.Status,
			t.EstimatedFuelCost, t.EstimatedTollCost, t.ActualFuelCost,
			t.ActualTollCost, t.DailyAllowance, t.OtherCosts, t.FreightRevenue,
		})
	}
	return rows
}

func (r *MaintenanceReport) SheetName() string { return "Maintenance" }

func (r *MaintenanceReport) Headers() []string {
	return []string{"ID", "Vehicle", "Model", "Type", "Date", "Cost", "Description", "Completed"}
}

func (r *MaintenanceReport) TableRows() [][]any {
	rows := make([][]any, 0, len(r.Maintenances))
	for _, m := range r.Maintenances {
		rows = append(rows, []any{
			strconv.FormatInt(m.ID, 10), m.VehiclePlate, m.VehicleModel, m.Type,
			m.Date, m.Cost, m.Description, m.IsCompleted,
		})
	}
	return rows
}

func (r *FinancialReport) SheetName() string { return "Financial" }

func (r *FinancialReport) Headers() []string {
	return []string{"ID", "Client", "Revenue", "Costs", "Profit"}
}

func (r *FinancialReport) TableRows() [][]any {
	rows := make([][]any, 0, len(r.Trips))
	for _, t := range r.Trips {
		rows = append(rows, []any{
			strconv.FormatInt(t.ID, 10), t.ClientName, t.FreightRevenue, t.TotalCosts, t.Profit,
		})
	}
	return rows
}

func (r *ProfitabilityReport) SheetName() string { return "Profitability" }

func (r *ProfitabilityReport) Headers() []string { return []string{"Message"} }

func (r *ProfitabilityReport) TableRows() [][]any {
	return [][]any{{r.Message}}
}
