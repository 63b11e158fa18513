package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fretor/internal/domain/analytics"
)

const (
	recentTripsLimit = 10
	rankingWindow    = 90
	rankingLimit     = 5
	trendMonths      = 3
)

// Repository is the storage access the dashboard needs. All methods are
// tenant-scoped.
type Repository interface {
	TripStatusCounts(ctx context.Context, tenantID int64) (StatusCounts, error)
	EntityCounts(ctx context.Context, tenantID int64) (EntityCounts, error)
	// CostTotals sums estimated and actual trip costs across all trips.
	CostTotals(ctx context.Context, tenantID int64) (estimated, actual float64, err error)
	RecentTrips(ctx context.Context, tenantID int64, limit int) ([]RecentTrip, error)
	// FinancialTotalsBetween sums freight revenue and actual costs for trips
	// departing in [from, to). Zero times mean an unbounded side.
	FinancialTotalsBetween(ctx context.Context, tenantID int64, from, to time.Time) (revenue, costs float64, err error)
}

// Service composes dashboard views from its own repository and the
// analytics engine's rankings.
type Service struct {
	repo      Repository
	analytics *analytics.Service
	now       func() time.Time
}

// NewService creates the dashboard service.
func NewService(repo Repository, analyticsSvc *analytics.Service, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, analytics: analyticsSvc, now: now}
}

// Stats builds the classic counters view.
func (s *Service) Stats(ctx context.Context, tenantID int64) (*Stats, error) {
	trips, err := s.repo.TripStatusCounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("trip status counts: %w", err)
	}
	entities, err := s.repo.EntityCounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("entity counts: %w", err)
	}
	estimated, actual, err := s.repo.CostTotals(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("cost totals: %w", err)
	}
	recent, err := s.repo.RecentTrips(ctx, tenantID, recentTripsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent trips: %w", err)
	}
	if recent == nil {
		recent = []RecentTrip{}
	}

	return &Stats{
		TotalTrips:          trips.Total,
		PlannedTrips:        trips.Planned,
		InTransitTrips:      trips.InTransit,
		CompletedTrips:      trips.Completed,
		CancelledTrips:      trips.Cancelled,
		TotalClients:        entities.Clients,
		TotalDrivers:        entities.Drivers,
		TotalVehicles:       entities.Vehicles,
		TotalRoutes:         entities.Routes,
		TotalEstimatedCosts: round2(estimated),
		TotalActualCosts:    round2(actual),
		RecentTrips:         recent,
	}, nil
}

// V2 builds the financial dashboard: lifetime totals, 90-day rankings and a
// three-month profitability trend in 30-day buckets.
func (s *Service) V2(ctx context.Context, tenantID int64) (*V2, error) {
	trips, err := s.repo.TripStatusCounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("trip status counts: %w", err)
	}

	revenue, costs, err := s.repo.FinancialTotalsBetween(ctx, tenantID, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("financial totals: %w", err)
	}
	profit := revenue - costs
	var margin float64
	if revenue > 0 {
		margin = profit / revenue * 100
	}

	topClients, err := s.analytics.TopClients(ctx, tenantID, rankingWindow, rankingLimit)
	if err != nil {
		return nil, fmt.Errorf("top clients: %w", err)
	}
	topDrivers, err := s.analytics.TopDrivers(ctx, tenantID, rankingWindow, rankingLimit)
	if err != nil {
		return nil, fmt.Errorf("top drivers: %w", err)
	}
	maintenance, err := s.analytics.VehicleMaintenanceCosts(ctx, tenantID, rankingWindow)
	if err != nil {
		return nil, fmt.Errorf("vehicle maintenance costs: %w", err)
	}

	trend, err := s.profitabilityTrend(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &V2{
		TotalTrips: trips.Total,
		TripsByStatus: map[string]int64{
			"planned":    trips.Planned,
			"in_transit": trips.InTransit,
			"completed":  trips.Completed,
			"cancelled":  trips.Cancelled,
		},
		TotalRevenue:       round2(revenue),
		TotalCosts:         round2(costs),
		TotalProfit:        round2(profit),
		ProfitMargin:       round2(margin),
		TopClients:         topClients,
		TopDrivers:         topDrivers,
		MaintenanceCosts:   maintenance,
		ProfitabilityTrend: trend,
	}, nil
}

func (s *Service) profitabilityTrend(ctx context.Context, tenantID int64) ([]ProfitabilityPoint, error) {
	now := s.now()
	trend := make([]ProfitabilityPoint, 0, trendMonths)

	// Oldest bucket first.
	for i := trendMonths; i >= 1; i-- {
		from := now.AddDate(0, 0, -i*30)
		to := from.AddDate(0, 0, 30)

		revenue, costs, err := s.repo.FinancialTotalsBetween(ctx, tenantID, from, to)
		if err != nil {
			return nil, fmt.Errorf("profitability bucket %d: %w", i, err)
		}

		profit := revenue - costs
		var margin float64
		if revenue > 0 {
			margin = profit / revenue * 100
		}
		trend = append(trend, ProfitabilityPoint{
			TotalRevenue: round2(revenue),
			TotalCosts:   round2(costs),
			TotalProfit:  round2(profit),
			ProfitMargin: round2(margin),
			Period:       from.Format("2006-01"),
		})
	}
	return trend, nil
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
