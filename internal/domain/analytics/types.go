// Package analytics computes tenant-scoped operational KPIs.
// Every computation takes an explicit tenant id and window; zero-denominator
// conditions are defined results (zero), never errors.
package analytics

// Retention is the customer retention KPI result.
type Retention struct {
	RetentionRate   float64 `json:"retention_rate"`
	TotalOldClients int64   `json:"total_old_clients"`
	RetainedClients int64   `json:"retained_clients"`
	PeriodDays      int     `json:"period_days"`
}

// FleetOccupation is the fleet usage KPI result.
type FleetOccupation struct {
	OccupationRate float64 `json:"occupation_rate"`
	TotalVehicles  int64   `json:"total_vehicles"`
	ActiveVehicles int64   `json:"active_vehicles"`
	PeriodDays     int     `json:"period_days"`
}

// CostPerKm is the average operating cost KPI result.
type CostPerKm struct {
	AverageCostPerKm float64 `json:"average_cost_per_km"`
	TotalCost        float64 `json:"total_cost"`
	TotalDistance    float64 `json:"total_distance"`
	CompletedTrips   int64   `json:"completed_trips"`
	PeriodDays       int     `json:"period_days"`
}

// MonthProjection is one projected month of the earnings forecast.
type MonthProjection struct {
	Month            string  `json:"month"` // YYYY-MM
	ProjectedRevenue float64 `json:"projected_revenue"`
	GrowthRate       float64 `json:"growth_rate"`
}

// EarningsProjection is the revenue forecast KPI result. The 5%-per-month
// growth factor is a flat heuristic, not a model.
type EarningsProjection struct {
	AverageMonthlyRevenue float64           `json:"average_monthly_revenue"`
	Projections           []MonthProjection `json:"projections"`
	TotalProjectedRevenue float64           `json:"total_projected_revenue"`
}

// OnTimeDelivery is the punctuality KPI result. Only completed trips with
// both actual and estimated arrival qualify.
type OnTimeDelivery struct {
	OnTimeRate   float64 `json:"on_time_rate"`
	OnTimeTrips  int64   `json:"on_time_trips"`
	DelayedTrips int64   `json:"delayed_trips"`
	TotalTrips   int64   `json:"total_trips"`
	PeriodDays   int     `json:"period_days"`
}

// MaintenanceCosts is the maintenance spend split KPI result.
type MaintenanceCosts struct {
	TotalCost            float64 `json:"total_maintenance_cost"`
	PreventiveCost       float64 `json:"preventive_cost"`
	CorrectiveCost       float64 `json:"corrective_cost"`
	PreventivePercentage float64 `json:"preventive_percentage"`
	CorrectivePercentage float64 `json:"corrective_percentage"`
	PeriodDays           int     `json:"period_days"`
}

// DriverPerformance is one driver's aggregate for the window. Drivers with
// zero trips in the window are not returned at all.
type DriverPerformance struct {
	DriverID        int64   `json:"driver_id"`
	DriverName      string  `json:"driver_name"`
	TotalTrips      int64   `json:"total_trips"`
	CompletedTrips  int64   `json:"completed_trips"`
	CompletionRate  float64 `json:"completion_rate"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageFuelCost float64 `json:"average_fuel_cost"`
}

// Comprehensive bundles all seven KPIs with their default windows for a
// single-call dashboard refresh.
type Comprehensive struct {
	CustomerRetention Retention           `json:"customer_retention"`
	FleetOccupation   FleetOccupation     `json:"fleet_occupation"`
	CostPerKm         CostPerKm           `json:"cost_per_km"`
	FutureEarnings    EarningsProjection  `json:"future_earnings"`
	OnTimeDelivery    OnTimeDelivery      `json:"on_time_delivery"`
	MaintenanceCosts  MaintenanceCosts    `json:"maintenance_costs"`
	DriverPerformance []DriverPerformance `json:"driver_performance"`
}

// ClientRanking is one client's profitability aggregate, ordered by profit
// descending with client id ascending as the deterministic tie-break.
type ClientRanking struct {
	ClientID             int64   `json:"client_id"`
	ClientName           string  `json:"client_name"`
	TotalTrips           int64   `json:"total_trips"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalProfit          float64 `json:"total_profit"`
	AverageProfitPerTrip float64 `json:"average_profit_per_trip"`
}

// DriverRanking is one driver's completion aggregate, ordered by completed
// trips descending with driver id ascending as the tie-break.
type DriverRanking struct {
	DriverID       int64   `json:"driver_id"`
	DriverName     string  `json:"driver_name"`
	TotalTrips     int64   `json:"total_trips"`
	CompletedTrips int64   `json:"completed_trips"`
	CompletionRate float64 `json:"completion_rate"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// VehicleMaintenanceCost is one vehicle's maintenance spend split.
type VehicleMaintenanceCost struct {
	VehicleID        int64   `db:"vehicle_id" json:"vehicle_id"`
	VehiclePlate     string  `db:"vehicle_plate" json:"vehicle_plate"`
	TotalCost        float64 `db:"total_maintenance_cost" json:"total_maintenance_cost"`
	PreventiveCost   float64 `db:"preventive_cost" json:"preventive_cost"`
	CorrectiveCost   float64 `db:"corrective_cost" json:"corrective_cost"`
	MaintenanceCount int64   `db:"maintenance_count" json:"maintenance_count"`
}

// Default windows, matching the synchronous KPI endpoints.
const (
	DefaultRetentionDays    = 90
	DefaultOccupationDays   = 30
	DefaultCostPerKmDays    = 30
	DefaultProjectionMonths = 6
	DefaultOnTimeDays       = 30
	DefaultMaintenanceDays  = 90
	DefaultDriverPerfDays   = 30
)

// monthlyGrowthRate is the flat growth heuristic applied per projected month.
const monthlyGrowthRate = 0.05
