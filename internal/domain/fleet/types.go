// Package fleet defines the tenant-scoped operational entities: clients,
// drivers, vehicles, routes, trips and maintenance records.
package fleet

import "time"

// TripStatus enumerates the trip lifecycle.
type TripStatus string

const (
	TripPlanned   TripStatus = "planned"
	TripInTransit TripStatus = "in_transit"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s TripStatus) Valid() bool {
	switch s {
	case TripPlanned, TripInTransit, TripCompleted, TripCancelled:
		return true
	}
	return false
}

// MaintenanceType partitions maintenance spend.
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventive"
	MaintenanceCorrective MaintenanceType = "corrective"
)

// Client is a freight customer of the tenant.
type Client struct {
	ID        int64     `db:"id"`
	TenantID  int64     `db:"tenant_id"`
	Name      string    `db:"name"`
	Document  string    `db:"document"`
	Contact   string    `db:"contact_name"`
	Phone     string    `db:"phone"`
	Email     string    `db:"email"`
	City      string    `db:"city"`
	State     string    `db:"state"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Driver operates vehicles for the tenant.
type Driver struct {
	ID            int64     `db:"id"`
	TenantID      int64     `db:"tenant_id"`
	Name          string    `db:"name"`
	LicenseNumber string    `db:"license_number"`
	LicenseExpiry time.Time `db:"license_expiry"`
	Phone         string    `db:"phone"`
	IsActive      bool      `db:"is_active"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Vehicle is a fleet unit.
type Vehicle struct {
	ID        int64     `db:"id"`
	TenantID  int64     `db:"tenant_id"`
	Plate     string    `db:"plate"`
	Model     string    `db:"model"`
	Brand     string    `db:"brand"`
	Year      int       `db:"year"`
	Capacity  float64   `db:"capacity"` // tonnes
	FuelType  string    `db:"fuel_type"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Route is a named origin-destination pair with planning estimates.
type Route struct {
	ID                int64     `db:"id"`
	TenantID          int64     `db:"tenant_id"`
	Name              string    `db:"name"`
	Origin            string    `db:"origin"`
	Destination       string    `db:"destination"`
	EstimatedDistance float64   `db:"estimated_distance"` // km
	EstimatedTime     float64   `db:"estimated_time"`     // hours
	IsActive          bool      `db:"is_active"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Trip is one planned or executed haul. Client, driver, vehicle and route
// are required and must belong to the same tenant as the trip; the read
// layer joins through trips.tenant_id so a mis-parented reference can never
// surface another tenant's rows.
type Trip struct {
	ID        int64 `db:"id"`
	TenantID  int64 `db:"tenant_id"`
	ClientID  int64 `db:"client_id"`
	DriverID  int64 `db:"driver_id"`
	VehicleID int64 `db:"vehicle_id"`
	RouteID   int64 `db:"route_id"`

	DepartureDate    time.Time  `db:"departure_date"`
	EstimatedArrival time.Time  `db:"estimated_arrival"`
	ActualDeparture  *time.Time `db:"actual_departure"`
	ActualArrival    *time.Time `db:"actual_arrival"`

	Status TripStatus `db:"status"`

	EstimatedFuelCost  float64  `db:"estimated_fuel_cost"`
	EstimatedTollCost  float64  `db:"estimated_toll_cost"`
	ActualFuelCost     *float64 `db:"actual_fuel_cost"`
	ActualTollCost     *float64 `db:"actual_toll_cost"`
	DailyAllowanceCost *float64 `db:"daily_allowance_cost"`
	OtherCosts         *float64 `db:"other_costs"`
	FreightRevenue     *float64 `db:"freight_revenue"`

	Notes     string    `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TotalActualCost sums the four actual cost components, treating missing
// values as zero.
func (t *Trip) TotalActualCost() float64 {
	return deref(t.ActualFuelCost) + deref(t.ActualTollCost) +
		deref(t.DailyAllowanceCost) + deref(t.OtherCosts)
}

// Revenue returns the freight revenue or zero when unset.
func (t *Trip) Revenue() float64 {
	return deref(t.FreightRevenue)
}

// Profit is revenue minus all actual cost components.
func (t *Trip) Profit() float64 {
	return t.Revenue() - t.TotalActualCost()
}

// Maintenance is a service record for a vehicle; tenant scope is transitive
// through the vehicle.
type Maintenance struct {
	ID          int64           `db:"id"`
	VehicleID   int64           `db:"vehicle_id"`
	Type        MaintenanceType `db:"maintenance_type"`
	Date        time.Time       `db:"maintenance_date"`
	Cost        float64         `db:"cost"`
	Description string          `db:"description"`
	IsCompleted bool            `db:"is_completed"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
