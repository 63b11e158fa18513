package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Service computes KPIs over tenant-scoped data. It is stateless: the tenant
// id comes in with every call and the clock is injected so windows are
// reproducible in tests.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates the analytics engine.
func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// CustomerRetention computes the share of pre-window clients that created at
// least one trip inside the window.
func (s *Service) CustomerRetention(ctx context.Context, tenantID int64, periodDays int) (*Retention, error) {
	windowStart := s.now().AddDate(0, 0, -periodDays)

	oldClients, err := s.repo.CountClientsCreatedBefore(ctx, tenantID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("count pre-window clients: %w", err)
	}
	retained, err := s.repo.CountClientsWithTripsSince(ctx, tenantID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("count retained clients: %w", err)
	}

	var rate float64
	if oldClients > 0 {
		rate = float64(retained) / float64(oldClients) * 100
	}

	return &Retention{
		RetentionRate:   round2(rate),
		TotalOldClients: oldClients,
		RetainedClients: retained,
		PeriodDays:      periodDays,
	}, nil
}

// FleetOccupation computes the share of vehicles used at least once in the
// window over the whole fleet.
func (s *Service) FleetOccupation(ctx context.Context, tenantID int64, periodDays int) (*FleetOccupation, error) {
	windowStart := s.now().AddDate(0, 0, -periodDays)

	total, err := s.repo.CountVehicles(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("count vehicles: %w", err)
	}
	active, err := s.repo.CountVehiclesUsedSince(ctx, tenantID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("count active vehicles: %w", err)
	}

	var rate float64
	if total > 0 {
		rate = float64(active) / float64(total) * 100
	}

	return &FleetOccupation{
		OccupationRate: round2(rate),
		TotalVehicles:  total,
		ActiveVehicles: active,
		PeriodDays:     periodDays,
	}, nil
}

// CostPerKm divides the actual cost of completed trips in the window by the
// estimated distance of their routes.
func (s *Service) CostPerKm(ctx context.Context, tenantID int64, periodDays int) (*CostPerKm, error) {
	windowStart := s.now().AddDate(0, 0, -periodDays)

	cost, distance, trips, err := s.repo.CompletedTripTotals(ctx, tenantID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("completed trip totals: %w", err)
	}

	var avg float64
	if distance > 0 {
		avg = cost / distance
	}

	return &CostPerKm{
		AverageCostPerKm: round2(avg),
		TotalCost:        round2(cost),
		TotalDistance:    round2(distance),
		CompletedTrips:   trips,
		PeriodDays:       periodDays,
	}, nil
}

// FutureEarnings projects revenue for the next months from the mean of the
// trailing three 30-day revenue buckets, grown by a flat 5% per month.
func (s *Service) FutureEarnings(ctx context.Context, tenantID int64, months int) (*EarningsProjection, error) {
	now := s.now()
	trailingStart := now.AddDate(0, 0, -90)

	var total float64
	for i := 0; i < 3; i++ {
		bucketStart := trailingStart.AddDate(0, 0, i*30)
		bucketEnd := bucketStart.AddDate(0, 0, 30)
		revenue, err := s.repo.RevenueBetween(ctx, tenantID, bucketStart, bucketEnd)
		if err != nil {
			return nil, fmt.Errorf("trailing revenue bucket %d: %w", i, err)
		}
		total += revenue
	}
	baseline := total / 3

	projections := make([]MonthProjection, 0, months)
	var projectedTotal float64
	for i := 0; i < months; i++ {
		monthDate := now.AddDate(0, 0, i*30)
		projected := baseline * (1 + float64(i)*monthlyGrowthRate)
		projectedTotal += projected

		projections = append(projections, MonthProjection{
			Month:            monthDate.Format("2006-01"),
			ProjectedRevenue: round2(projected),
			GrowthRate:       round2(monthlyGrowthRate * 100 * float64(i+1)),
		})
	}

	return &EarningsProjection{
		AverageMonthlyRevenue: round2(baseline),
		Projections:           projections,
		TotalProjectedRevenue: round2(projectedTotal),
	}, nil
}

// OnTimeDelivery splits completed trips with both arrival timestamps into
// on-time (actual <= estimated) and delayed.
func (s *Service) OnTimeDelivery(ctx context.Context, tenantID int64, periodDays int) (*OnTimeDelivery, error) {
	windowStart := s.now().AddDate(0, 0, -periodDays)

	onTime, delayed, err := s.repo.ArrivalOutcomesSince(ctx, tenantID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("arrival outcomes: %w", err)
	}

	total := onTime + delayed
	var rate float64
	if total > 0 {
		rate = float64(onTime) / float64(total) * 100
	}

	return &OnTimeDelivery{
		OnTimeRate:   round2(rate),
		OnTimeTrips:  onTime,
		DelayedTrips: delayed,
		TotalTrips:   total,
		PeriodDays:   periodDays,
	}, nil
}

// MaintenanceCostAnalysis partitions maintenance spend in the window between
// preventive and corrective work.
func (s *Service) MaintenanceCostAnalysis(ctx context.Context, tenantID int64, periodDays int) (*MaintenanceCosts, error) {
	windowStart := s.now().AddDate(0, 0, -periodDays)

	preventive, corrective, err := s.repo.MaintenanceCostsByType(ctx, tenantID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("maintenance costs: %w", err)
	}

	total := preventive + corrective
	var preventivePct, correctivePct float64
	if total > 0 {
		preventivePct = preventive / total * 100
		correctivePct = corrective / total * 100
	}

	return &MaintenanceCosts{
		TotalCost:            round2(total),
		PreventiveCost:       round2(preventive),
		CorrectiveCost:       round2(corrective),
		PreventivePercentage: round2(preventivePct),
		CorrectivePercentage: round2(correctivePct),
		PeriodDays:           periodDays,
	}, nil
}

// DriverPerformance returns per-driver aggregates for the window. Drivers
// without trips in the window are excluded, not returned with zero rows.
func (s *Service) DriverPerformance(ctx context.Context, tenantID int64, periodDays int) ([]DriverPerformance, error) {
	windowStart := s.now().AddDate(0, 0, -periodDays)

	rows, err := s.repo.DriverStatsSince(ctx, tenantID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("driver stats: %w", err)
	}

	result := make([]DriverPerformance, 0, len(rows))
	for _, row := range rows {
		var completion float64
		if row.TotalTrips > 0 {
			completion = float64(row.CompletedTrips) / float64(row.TotalTrips) * 100
		}
		result = append(result, DriverPerformance{
			DriverID:        row.DriverID,
			DriverName:      row.DriverName,
			TotalTrips:      row.TotalTrips,
			CompletedTrips:  row.CompletedTrips,
			CompletionRate:  round2(completion),
			TotalRevenue:    round2(row.TotalRevenue),
			AverageFuelCost: round2(row.AvgFuelCost),
		})
	}
	return result, nil
}

// Comprehensive composes all seven KPIs with their default windows.
func (s *Service) Comprehensive(ctx context.Context, tenantID int64) (*Comprehensive, error) {
	retention, err := s.CustomerRetention(ctx, tenantID, DefaultRetentionDays)
	if err != nil {
		return nil, err
	}
	occupation, err := s.FleetOccupation(ctx, tenantID, DefaultOccupationDays)
	if err != nil {
		return nil, err
	}
	costPerKm, err := s.CostPerKm(ctx, tenantID, DefaultCostPerKmDays)
	if err != nil {
		return nil, err
	}
	earnings, err := s.FutureEarnings(ctx, tenantID, DefaultProjectionMonths)
	if err != nil {
		return nil, err
	}
	onTime, err := s.OnTimeDelivery(ctx, tenantID, DefaultOnTimeDays)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.MaintenanceCostAnalysis(ctx, tenantID, DefaultMaintenanceDays)
	if err != nil {
		return nil, err
	}
	drivers, err := s.DriverPerformance(ctx, tenantID, DefaultDriverPerfDays)
	if err != nil {
		return nil, err
	}

	return &Comprehensive{
		CustomerRetention: *retention,
		FleetOccupation:   *occupation,
		CostPerKm:         *costPerKm,
		FutureEarnings:    *earnings,
		OnTimeDelivery:    *onTime,
		MaintenanceCosts:  *maintenance,
		DriverPerformance: drivers,
	}, nil
}

// TopClients ranks clients by total profit descending; ties break by client
// id ascending so repeated calls return a stable order.
func (s *Service) TopClients(ctx context.Context, tenantID int64, periodDays, limit int) ([]ClientRanking, error) {
	windowStart := s.now().AddDate(0, 0, -periodDays)

	rows, err := s.repo.ClientStatsSince(ctx, tenantID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("client stats: %w", err)
	}

	rankings := make([]ClientRanking, 0, len(rows))
	for _, row := range rows {
		profit := row.TotalRevenue - row.TotalCost
		var avgProfit float64
		if row.TotalTrips > 0 {
			avgProfit = profit / float64(row.TotalTrips)
		}
		rankings = append(rankings, ClientRanking{
			ClientID:            row.ClientID,
			ClientName:          row.ClientName,
			TotalTrips:          row.TotalTrips,
			TotalRevenue:        round2(row.TotalRevenue),
			TotalProfit:         round2(profit),
			AverageProfitPerTrip: round2(avgProfit),
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].TotalProfit != rankings[j].TotalProfit {
			return rankings[i].TotalProfit > rankings[j].TotalProfit
		}
		return rankings[i].ClientID < rankings[j].ClientID
	})

	if limit > 0 && len(rankings) > limit {
		rankings = rankings[:limit]
	}
	return rankings, nil
}

// TopDrivers ranks drivers by completed trips descending; ties break by
// driver id ascending.
func (s *Service) TopDrivers(ctx context.Context, tenantID int64, periodDays, limit int) ([]DriverRanking, error) {
	windowStart := s.now().AddDate(0, 0, -periodDays)

	rows, err := s.repo.DriverStatsSince(ctx, tenantID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("driver stats: %w", err)
	}

	rankings := make([]DriverRanking, 0, len(rows))
	for _, row := range rows {
		var completion float64
		if row.TotalTrips > 0 {
			completion = float64(row.CompletedTrips) / float64(row.TotalTrips) * 100
		}
		rankings = append(rankings, DriverRanking{
			DriverID:       row.DriverID,
			DriverName:     row.DriverName,
			TotalTrips:     row.TotalTrips,
			CompletedTrips: row.CompletedTrips,
			CompletionRate: round2(completion),
			TotalRevenue:   round2(row.TotalRevenue),
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].CompletedTrips != rankings[j].CompletedTrips {
			return rankings[i].CompletedTrips > rankings[j].CompletedTrips
		}
		return rankings[i].DriverID < rankings[j].DriverID
	})

	if limit > 0 && len(rankings) > limit {
		rankings = rankings[:limit]
	}
	return rankings, nil
}

// VehicleMaintenanceCosts returns per-vehicle maintenance spend for the
// richer dashboard view.
func (s *Service) VehicleMaintenanceCosts(ctx context.Context, tenantID int64, periodDays int) ([]VehicleMaintenanceCost, error) {
	windowStart := s.now().AddDate(0, 0, -periodDays)

	rows, err := s.repo.VehicleMaintenanceCostsSince(ctx, tenantID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("vehicle maintenance costs: %w", err)
	}
	for i := range rows {
		rows[i].TotalCost = round2(rows[i].TotalCost)
		rows[i].PreventiveCost = round2(rows[i].PreventiveCost)
		rows[i].CorrectiveCost = round2(rows[i].CorrectiveCost)
	}
	return rows, nil
}

// round2 rounds to two decimal places using decimal arithmetic so rates like
// 33.335 don't drift under float rounding.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
