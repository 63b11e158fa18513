package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fretor/internal/core/apperror"
	"fretor/internal/domain/reports"
	"fretor/internal/infrastructure/artifact"
	"fretor/internal/infrastructure/http/v1/dto"
	"fretor/internal/infrastructure/metrics"
)

// ReportsHandler exposes the async report pipeline.
type ReportsHandler struct {
	svc       *reports.Service
	artifacts *artifact.Store
	metrics   *metrics.Metrics
}

// NewReportsHandler creates the reports handler.
func NewReportsHandler(svc *reports.Service, artifacts *artifact.Store, m *metrics.Metrics) *ReportsHandler {
	return &ReportsHandler{svc: svc, artifacts: artifacts, metrics: m}
}

// Generate handles POST /reports/generate.
func (h *ReportsHandler) Generate(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	var body dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		_ = c.Error(apperror.NewValidation("report_type and format are required"))
		return
	}

	req, err := body.ToRequest()
	if err != nil {
		_ = c.Error(err)
		return
	}

	job, err := h.svc.Enqueue(c.Request.Context(), tenantID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.metrics.JobEnqueued(string(req.Type), string(req.Format))
	c.JSON(http.StatusAccepted, dto.FromJob(job))
}

// Status handles GET /reports/status/:job_id.
func (h *ReportsHandler) Status(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	job, err := h.svc.Status(c.Request.Context(), tenantID, c.Param("job_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.FromJob(job))
}

// Download handles GET /reports/download/:filename. The artifact must belong
// to one of the requesting tenant's jobs.
func (h *ReportsHandler) Download(c *gin.Context) {
	tenantID, ok := requestTenantID(c)
	if !ok {
		return
	}

	filename := c.Param("filename")
	if err := h.svc.VerifyArtifact(c.Request.Context(), tenantID, filename); err != nil {
		_ = c.Error(err)
		return
	}

	r, err := h.artifacts.Open(c.Request.Context(), filename)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer r.Close()

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", contentTypeFor(filename))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, r)
}

func contentTypeFor(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".xlsx"):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
