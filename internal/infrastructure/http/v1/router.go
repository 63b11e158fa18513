// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fretor/internal/core/tenant"
	"fretor/internal/domain/analytics"
	"fretor/internal/domain/dashboard"
	"fretor/internal/domain/reports"
	"fretor/internal/infrastructure/artifact"
	"fretor/internal/infrastructure/http/v1/handlers"
	"fretor/internal/infrastructure/http/v1/middleware"
	"fretor/internal/infrastructure/metrics"
	"fretor/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Logger  *logger.Logger
	Metrics *metrics.Metrics

	// Pool is used by readiness checks only; data access goes through the
	// services.
	Pool *pgxpool.Pool

	TenantResolver    *tenant.Resolver
	DefaultTenantSlug string

	Analytics *analytics.Service
	Dashboard *dashboard.Service
	Reports   *reports.Service
	Artifacts *artifact.Store
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters).
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Metrics(cfg.Metrics))
	router.Use(middleware.ErrorHandler())

	// Health and metrics endpoints carry no tenant.
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}
	router.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{}),
	))

	analyticsHandler := handlers.NewAnalyticsHandler(cfg.Analytics)
	dashboardHandler := handlers.NewDashboardHandler(cfg.Dashboard)
	reportsHandler := handlers.NewReportsHandler(cfg.Reports, cfg.Artifacts, cfg.Metrics)

	api := router.Group("/api/v1")
	api.Use(middleware.Tenant(cfg.TenantResolver, cfg.DefaultTenantSlug))
	{
		registerDataRoutes(api, analyticsHandler, dashboardHandler, reportsHandler)

		// Path-identified tenants reach the same handlers under
		// /api/v1/tenant/:tenant_slug/...; the middleware reads the slug
		// from the URL.
		scoped := api.Group("/tenant/:tenant_slug")
		registerDataRoutes(scoped, analyticsHandler, dashboardHandler, reportsHandler)
	}

	return router
}

func registerDataRoutes(
	rg *gin.RouterGroup,
	analyticsHandler *handlers.AnalyticsHandler,
	dashboardHandler *handlers.DashboardHandler,
	reportsHandler *handlers.ReportsHandler,
) {
	analyticsGroup := rg.Group("/analytics")
	{
		analyticsGroup.GET("/customer-retention", analyticsHandler.CustomerRetention)
		analyticsGroup.GET("/fleet-occupation", analyticsHandler.FleetOccupation)
		analyticsGroup.GET("/cost-per-km", analyticsHandler.CostPerKm)
		analyticsGroup.GET("/future-earnings", analyticsHandler.FutureEarnings)
		analyticsGroup.GET("/on-time-delivery", analyticsHandler.OnTimeDelivery)
		analyticsGroup.GET("/maintenance-costs", analyticsHandler.MaintenanceCosts)
		analyticsGroup.GET("/driver-performance", analyticsHandler.DriverPerformance)
		analyticsGroup.GET("/comprehensive", analyticsHandler.Comprehensive)
	}

	rg.GET("/dashboard/stats", dashboardHandler.Stats)

	reportsGroup := rg.Group("/reports")
	{
		reportsGroup.GET("/dashboard/v2", dashboardHandler.V2)
		reportsGroup.POST("/generate", reportsHandler.Generate)
		reportsGroup.GET("/status/:job_id", reportsHandler.Status)
		reportsGroup.GET("/download/:filename", reportsHandler.Download)
	}
}
