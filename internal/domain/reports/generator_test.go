package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	trips        []TripRow
	maintenances []MaintenanceRow
	err          error
	panicWith    any

	lastReq Request
}

func (f *fakeReportRepo) TripRows(_ context.Context, _ int64, req Request) ([]TripRow, error) {
	f.lastReq = req
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.trips, f.err
}

func (f *fakeReportRepo) MaintenanceRows(_ context.Context, _ int64, req Request) ([]MaintenanceRow, error) {
	f.lastReq = req
	return f.maintenances, f.err
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestGenerator_TripsReport(t *testing.T) {
	repo := &fakeReportRepo{trips: []TripRow{
		{ID: 1, ClientName: "Acme", DriverName: "Ana", VehiclePlate: "ABC-1234", RouteName: "SP-RJ"},
		{ID: 2, ClientName: "Beta", DriverName: "Bruno", VehiclePlate: "DEF-5678", RouteName: "RJ-BH"},
	}}
	gen := NewGenerator(repo)

	req := Request{Type: TypeTrips, Format: FormatJSON, StartDate: datePtr(2024, 3, 1)}
	doc, err := gen.Build(context.Background(), 1, req)
	require.NoError(t, err)

	report, ok := doc.(*TripsReport)
	require.True(t, ok)
	assert.Equal(t, TypeTrips, report.ReportType)
	assert.Equal(t, 2, report.TotalTrips)
	require.NotNil(t, report.Filters.StartDate)
	assert.Equal(t, "2024-03-01", *report.Filters.StartDate)
	assert.Nil(t, report.Filters.EndDate)
}

func TestGenerator_EmptyTripsReportHasEmptySlice(t *testing.T) {
	gen := NewGenerator(&fakeReportRepo{})

	doc, err := gen.Build(context.Background(), 1, Request{Type: TypeTrips, Format: FormatJSON})
	require.NoError(t, err)

	report := doc.(*TripsReport)
	assert.Zero(t, report.TotalTrips)
	assert.NotNil(t, report.Trips)
}

func TestGenerator_MaintenanceReport(t *testing.T) {
	repo := &fakeReportRepo{maintenances: []MaintenanceRow{
		{ID: 1, VehiclePlate: "ABC-1234", Type: "preventive", Cost: 350},
	}}
	gen := NewGenerator(repo)

	vehicleID := int64(7)
	req := Request{Type: TypeMaintenance, Format: FormatJSON, VehicleID: &vehicleID}
	doc, err := gen.Build(context.Background(), 1, req)
	require.NoError(t, err)

	report := doc.(*MaintenanceReport)
	assert.Equal(t, 1, report.TotalMaintenances)
	assert.Equal(t, &vehicleID, report.Filters.VehicleID)
	assert.Equal(t, &vehicleID, repo.lastReq.VehicleID)
}

func TestGenerator_FinancialReportMath(t *testing.T) {
	repo := &fakeReportRepo{trips: []TripRow{
		{ID: 1, ClientName: "Acme", FreightRevenue: 1000, ActualFuelCost: 200, ActualTollCost: 50, DailyAllowance: 30, OtherCosts: 20},
		{ID: 2, ClientName: "Beta", FreightRevenue: 500, ActualFuelCost: 100},
	}}
	gen := NewGenerator(repo)

	doc, err := gen.Build(context.Background(), 1, Request{Type: TypeFinancial, Format: FormatJSON})
	require.NoError(t, err)

	report := doc.(*FinancialReport)
	assert.Equal(t, 1500.0, report.Summary.TotalRevenue)
	assert.Equal(t, 400.0, report.Summary.TotalCosts)
	assert.Equal(t, 1100.0, report.Summary.TotalProfit)
	assert.Equal(t, 73.33, report.Summary.ProfitMargin)

	require.Len(t, report.Trips, 2)
	assert.Equal(t, 700.0, report.Trips[0].Profit)
	assert.Equal(t, 400.0, report.Trips[1].Profit)
}

func TestGenerator_FinancialReportZeroRevenue(t *testing.T) {
	repo := &fakeReportRepo{trips: []TripRow{{ID: 1, ActualFuelCost: 100}}}
	gen := NewGenerator(repo)

	doc, err := gen.Build(context.Background(), 1, Request{Type: TypeFinancial, Format: FormatJSON})
	require.NoError(t, err)

	report := doc.(*FinancialReport)
	assert.Zero(t, report.Summary.ProfitMargin)
	assert.Equal(t, -100.0, report.Summary.TotalProfit)
}

func TestGenerator_ProfitabilityPlaceholder(t *testing.T) {
	gen := NewGenerator(&fakeReportRepo{})

	doc, err := gen.Build(context.Background(), 1, Request{Type: TypeProfitability, Format: FormatJSON})
	require.NoError(t, err)

	report := doc.(*ProfitabilityReport)
	assert.Equal(t, TypeProfitability, report.ReportType)
	assert.NotEmpty(t, report.Message)
}

func TestGenerator_UnknownTypeFails(t *testing.T) {
	gen := NewGenerator(&fakeReportRepo{})

	_, err := gen.Build(context.Background(), 1, Request{Type: "payroll", Format: FormatJSON})
	require.Error(t, err)
}

func TestGenerator_RepositoryErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	gen := NewGenerator(&fakeReportRepo{err: boom})

	_, err := gen.Build(context.Background(), 1, Request{Type: TypeTrips, Format: FormatJSON})
	assert.ErrorIs(t, err, boom)
}

func TestTabularViews(t *testing.T) {
	trips := &TripsReport{Trips: []TripRow{{ID: 9, ClientName: "Acme"}}}
	assert.Len(t, trips.Headers(), 14)
	require.Len(t, trips.TableRows(), 1)
	assert.Equal(t, "9", trips.TableRows()[0][0])

	fin := &FinancialReport{Trips: []FinancialRow{{ID: 1, Profit: 10}}}
	assert.Len(t, fin.Headers(), 5)
	assert.Len(t, fin.TableRows(), 1)
}

func TestRequestValidate(t *testing.T) {
	valid := Request{Type: TypeTrips, Format: FormatJSON}
	assert.NoError(t, valid.Validate())

	assert.Error(t, Request{Type: "payroll", Format: FormatJSON}.Validate())
	assert.Error(t, Request{Type: TypeTrips, Format: "csv"}.Validate())

	start := datePtr(2024, 5, 10)
	end := datePtr(2024, 5, 1)
	inverted := Request{Type: TypeTrips, Format: FormatJSON, StartDate: start, EndDate: end}
	assert.Error(t, inverted.Validate())

	sameDay := Request{Type: TypeTrips, Format: FormatJSON, StartDate: start, EndDate: start}
	assert.NoError(t, sameDay.Validate())
}
