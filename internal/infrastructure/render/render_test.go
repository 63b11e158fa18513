package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fretor/internal/domain/reports"
)

func tripsDoc() *reports.TripsReport {
	return &reports.TripsReport{
		ReportType: reports.TypeTrips,
		TotalTrips: 2,
		Trips: []reports.TripRow{
			{ID: 1, ClientName: "Acme", DriverName: "Ana", VehiclePlate: "ABC-1234", RouteName: "SP-RJ", Status: "completed", FreightRevenue: 1000},
			{ID: 2, ClientName: "Beta", DriverName: "Bruno", VehiclePlate: "DEF-5678", RouteName: "RJ-BH", Status: "planned", FreightRevenue: 500},
		},
	}
}

func TestJSON_RendersIndentedDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSON().Render(&buf, tripsDoc()))

	assert.Equal(t, "json", NewJSON().Extension())
	assert.Contains(t, buf.String(), "\n  \"report_type\": \"trips\"")

	var decoded reports.TripsReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.TotalTrips)
	require.Len(t, decoded.Trips, 2)
	assert.Equal(t, "Acme", decoded.Trips[0].ClientName)
}

func TestExcel_RendersHeadersAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcel().Render(&buf, tripsDoc()))
	assert.Equal(t, "xlsx", NewExcel().Extension())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Trips")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Client", rows[0][1])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Acme", rows[1][1])
	assert.Equal(t, "Bruno", rows[2][2])
}

func TestExcel_EmptyDatasetStillHasHeaderRow(t *testing.T) {
	doc := &reports.MaintenanceReport{ReportType: reports.TypeMaintenance}

	var buf bytes.Buffer
	require.NoError(t, NewExcel().Render(&buf, doc))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Maintenance")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Vehicle", rows[0][1])
}
