package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fretor/internal/domain/dashboard"
)

// DashboardHandler exposes the two dashboard views.
type DashboardHandler struct {
	svc *dashboard.Service
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.Stats(c.Request.Context(), tenantID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// V2 handles GET /reports/dashboard/v2.
func (h *DashboardHandler) V2(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	result, err := h.svc.V2(c.Request.Context(), tenantID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}
