package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fretor/internal/core/apperror"
	"fretor/internal/domain/analytics"
	"fretor/internal/infrastructure/http/v1/dto"
)

// AnalyticsHandler exposes the KPI endpoints.
type AnalyticsHandler struct {
	svc *analytics.Service
}

// NewAnalyticsHandler creates the analytics handler.
func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// CustomerRetention handles GET /analytics/customer-retention.
func (h *AnalyticsHandler) CustomerRetention(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	var q dto.LongPeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperror.NewValidation("period_days must be between 30 and 365"))
		return
	}

	result, err := h.svc.CustomerRetention(c.Request.Context(), tenantID, q.PeriodDays)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FleetOccupation handles GET /analytics/fleet-occupation.
func (h *AnalyticsHandler) FleetOccupation(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperror.NewValidation("period_days must be between 7 and 90"))
		return
	}

	result, err := h.svc.FleetOccupation(c.Request.Context(), tenantID, q.PeriodDays)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CostPerKm handles GET /analytics/cost-per-km.
func (h *AnalyticsHandler) CostPerKm(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperror.NewValidation("period_days must be between 7 and 90"))
		return
	}

	result, err := h.svc.CostPerKm(c.Request.Context(), tenantID, q.PeriodDays)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FutureEarnings handles GET /analytics/future-earnings.
func (h *AnalyticsHandler) FutureEarnings(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	var q dto.MonthsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperror.NewValidation("months must be between 1 and 12"))
		return
	}

	result, err := h.svc.FutureEarnings(c.Request.Context(), tenantID, q.Months)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// OnTimeDelivery handles GET /analytics/on-time-delivery.
func (h *AnalyticsHandler) OnTimeDelivery(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperror.NewValidation("period_days must be between 7 and 90"))
		return
	}

	result, err := h.svc.OnTimeDelivery(c.Request.Context(), tenantID, q.PeriodDays)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MaintenanceCosts handles GET /analytics/maintenance-costs.
func (h *AnalyticsHandler) MaintenanceCosts(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	var q dto.LongPeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperror.NewValidation("period_days must be between 30 and 365"))
		return
	}

	result, err := h.svc.MaintenanceCostAnalysis(c.Request.Context(), tenantID, q.PeriodDays)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DriverPerformance handles GET /analytics/driver-performance.
func (h *AnalyticsHandler) DriverPerformance(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperror.NewValidation("period_days must be between 7 and 90"))
		return
	}

	result, err := h.svc.DriverPerformance(c.Request.Context(), tenantID, q.PeriodDays)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period_days": q.PeriodDays,
		"drivers":     result,
	})
}

// Comprehensive handles GET /analytics/comprehensive.
func (h *AnalyticsHandler) Comprehensive(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.Comprehensive(c.Request.Context(), tenantID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}
