// Package reports builds report datasets and drives their asynchronous
// generation into downloadable artifacts.
package reports

import (
	"encoding/json"
	"fmt"
	"time"

	"fretor/internal/core/apperror"
)

// Type is a supported report type.
type Type string

const (
	TypeTrips         Type = "trips"
	TypeMaintenance   Type = "maintenance"
	TypeFinancial     Type = "financial"
	TypeProfitability Type = "profitability"
)

// Valid reports whether the type is one of the supported report types.
func (t Type) Valid() bool {
	switch t {
	case TypeTrips, TypeMaintenance, TypeFinancial, TypeProfitability:
		return true
	}
	return false
}

// Format is a requested artifact format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// Valid reports whether the format is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatExcel, FormatPDF:
		return true
	}
	return false
}

// Request describes one report to generate. All filters are optional.
type Request struct {
	Type      Type
	Format    Format
	StartDate *time.Time
	EndDate   *time.Time
	ClientID  *int64
	DriverID  *int64
	VehicleID *int64
}

// Validate rejects unsupported types and formats and inverted date ranges
// before a job is ever created.
func (r Request) Validate() error {
	if !r.Type.Valid() {
		return apperror.NewUnsupportedReport("type", string(r.Type))
	}
	if !r.Format.Valid() {
		return apperror.NewUnsupportedReport("format", string(r.Format))
	}
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return apperror.NewValidation("end_date must not be before start_date")
	}
	return nil
}

// requestParams is the serialized form of a Request carried inside a job
// record, so a worker process can rebuild the request it has to execute.
type requestParams struct {
	Type      Type       `json:"report_type"`
	Format    Format     `json:"format"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	ClientID  *int64     `json:"client_id,omitempty"`
	DriverID  *int64     `json:"driver_id,omitempty"`
	VehicleID *int64     `json:"vehicle_id,omitempty"`
}

// MarshalParams serializes the request for storage on the job record.
func (r Request) MarshalParams() ([]byte, error) {
	return json.Marshal(requestParams(r))
}

// ParseParams rebuilds a request from a job record's params payload.
func ParseParams(data []byte) (Request, error) {
	var p requestParams
	if err := json.Unmarshal(data, &p); err != nil {
		return Request{}, fmt.Errorf("decode report params: %w", err)
	}
	return Request(p), nil
}

// Filters echoes the request filters into the generated dataset.
type Filters struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	ClientID  *int64  `json:"client_id,omitempty"`
	DriverID  *int64  `json:"driver_id,omitempty"`
	VehicleID *int64  `json:"vehicle_id,omitempty"`
}

func filtersFrom(req Request) Filters {
	f := Filters{
		ClientID:  req.ClientID,
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
	}
	if req.StartDate != nil {
		s := req.StartDate.Format("2006-01-02")
		f.StartDate = &s
	}
	if req.EndDate != nil {
		s := req.EndDate.Format("2006-01-02")
		f.EndDate = &s
	}
	return f
}

// TripRow is one trip in the trips report, already joined with its client,
// driver, vehicle and route names.
type TripRow struct {
	ID                int64   `db:"id" json:"id"`
	ClientName        string  `db:"client_name" json:"client_name"`
	DriverName        string  `db:"driver_name" json:"driver_name"`
	VehiclePlate      string  `db:"vehicle_plate" json:"vehicle_plate"`
	RouteName         string  `db:"route_name" json:"route_name"`
	DepartureDate     string  `db:"departure_date" json:"departure_date"`
	Status            string  `db:"status" json:"status"`
	EstimatedFuelCost float64 `db:"estimated_fuel_cost" json:"estimated_fuel_cost"`
	EstimatedTollCost float64 `db:"estimated_toll_cost" json:"estimated_toll_cost"`
	ActualFuelCost    float64 `db:"actual_fuel_cost" json:"actual_fuel_cost"`
	ActualTollCost    float64 `db:"actual_toll_cost" json:"actual_toll_cost"`
	DailyAllowance    float64 `db:"daily_allowance_cost" json:"daily_allowance_cost"`
	OtherCosts        float64 `db:"other_costs" json:"other_costs"`
	FreightRevenue    float64 `db:"freight_revenue" json:"freight_revenue"`
}

// TripsReport is the trips report dataset.
type TripsReport struct {
	ReportType Type      `json:"report_type"`
	Filters    Filters   `json:"filters"`
	TotalTrips int       `json:"total_trips"`
	Trips      []TripRow `json:"trips"`
}

// MaintenanceRow is one maintenance record in the maintenance report.
type MaintenanceRow struct {
	ID           int64   `db:"id" json:"id"`
	VehiclePlate string  `db:"vehicle_plate" json:"vehicle_plate"`
	VehicleModel string  `db:"vehicle_model" json:"vehicle_model"`
	Type         string  `db:"maintenance_type" json:"maintenance_type"`
	Date         string  `db:"maintenance_date" json:"maintenance_date"`
	Cost         float64 `db:"cost" json:"cost"`
	Description  string  `db:"description" json:"description"`
	IsCompleted  bool    `db:"is_completed" json:"is_completed"`
}

// MaintenanceReport is the maintenance report dataset.
type MaintenanceReport struct {
	ReportType        Type             `json:"report_type"`
	Filters           Filters          `json:"filters"`
	TotalMaintenances int              `json:"total_maintenances"`
	Maintenances      []MaintenanceRow `json:"maintenances"`
}

// FinancialRow is one trip's revenue/cost/profit line.
type FinancialRow struct {
	ID             int64   `json:"id"`
	ClientName     string  `json:"client_name"`
	FreightRevenue float64 `json:"freight_revenue"`
	TotalCosts     float64 `json:"total_costs"`
	Profit         float64 `json:"profit"`
}

// FinancialSummary totals the financial report.
type FinancialSummary struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalCosts   float64 `json:"total_costs"`
	TotalProfit  float64 `json:"total_profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// FinancialReport is the financial report dataset.
type FinancialReport struct {
	ReportType Type             `json:"report_type"`
	Filters    Filters          `json:"filters"`
	Summary    FinancialSummary `json:"summary"`
	Trips      []FinancialRow   `json:"trips"`
}

// ProfitabilityReport is a declared placeholder: the type is accepted and
// produces this fixed dataset until per-route profitability lands.
type ProfitabilityReport struct {
	ReportType Type    `json:"report_type"`
	Filters    Filters `json:"filters"`
	Message    string  `json:"message"`
}
