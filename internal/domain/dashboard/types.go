// Package dashboard aggregates operational counters and financial summaries
// for the two dashboard views.
package dashboard

import "fretor/internal/domain/analytics"

// RecentTrip is one row of the recent-activity list.
type RecentTrip struct {
	ID               int64  `db:"id" json:"id"`
	ClientName       string `db:"client_name" json:"client_name"`
	DriverName       string `db:"driver_name" json:"driver_name"`
	VehiclePlate     string `db:"vehicle_plate" json:"vehicle_plate"`
	Status           string `db:"status" json:"status"`
	DepartureDate    string `db:"departure_date" json:"departure_date"`
	EstimatedArrival string `db:"estimated_arrival" json:"estimated_arrival"`
}

// Stats is the classic dashboard: status counters, entity counters, cost
// sums and the ten most recent trips.
type Stats struct {
	TotalTrips          int64        `json:"total_trips"`
	PlannedTrips        int64        `json:"planned_trips"`
	InTransitTrips      int64        `json:"in_transit_trips"`
	CompletedTrips      int64        `json:"completed_trips"`
	CancelledTrips      int64        `json:"cancelled_trips"`
	TotalClients        int64        `json:"total_clients"`
	TotalDrivers        int64        `json:"total_drivers"`
	TotalVehicles       int64        `json:"total_vehicles"`
	TotalRoutes         int64        `json:"total_routes"`
	TotalEstimatedCosts float64      `json:"total_estimated_costs"`
	TotalActualCosts    float64      `json:"total_actual_costs"`
	RecentTrips         []RecentTrip `json:"recent_trips"`
}

// ProfitabilityPoint is one month of the profitability trend.
type ProfitabilityPoint struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalCosts   float64 `json:"total_costs"`
	TotalProfit  float64 `json:"total_profit"`
	ProfitMargin float64 `json:"profit_margin"`
	Period       string  `json:"period"` // YYYY-MM
}

// V2 is the financial dashboard: totals, margin, rankings and the trailing
// profitability trend.
type V2 struct {
	TotalTrips         int64                              `json:"total_trips"`
	TripsByStatus      map[string]int64                   `json:"trips_by_status"`
	TotalRevenue       float64                            `json:"total_revenue"`
	TotalCosts         float64                            `json:"total_costs"`
	TotalProfit        float64                            `json:"total_profit"`
	ProfitMargin       float64                            `json:"profit_margin"`
	TopClients         []analytics.ClientRanking          `json:"top_clients"`
	TopDrivers         []analytics.DriverRanking          `json:"top_drivers"`
	MaintenanceCosts   []analytics.VehicleMaintenanceCost `json:"maintenance_costs"`
	ProfitabilityTrend []ProfitabilityPoint               `json:"profitability_trend"`
}

// StatusCounts is the per-status trip breakdown from storage.
type StatusCounts struct {
	Total     int64
	Planned   int64
	InTransit int64
	Completed int64
	Cancelled int64
}

// EntityCounts is the per-entity record count from storage.
type EntityCounts struct {
	Clients  int64
	Drivers  int64
	Vehicles int64
	Routes   int64
}
