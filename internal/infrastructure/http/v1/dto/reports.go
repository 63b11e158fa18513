package dto

import (
	"time"

	"fretor/internal/core/apperror"
	"fretor/internal/domain/jobs"
	"fretor/internal/domain/reports"
)

// GenerateReportRequest is the body of POST /reports/generate.
type GenerateReportRequest struct {
	ReportType string  `json:"report_type" binding:"required"`
	Format     string  `json:"format" binding:"required"`
	StartDate  *string `json:"start_date"` // YYYY-MM-DD
	EndDate    *string `json:"end_date"`   // YYYY-MM-DD
	ClientID   *int64  `json:"client_id"`
	DriverID   *int64  `json:"driver_id"`
	VehicleID  *int64  `json:"vehicle_id"`
}

// ToRequest converts the DTO into a domain request, parsing the dates.
func (r GenerateReportRequest) ToRequest() (reports.Request, error) {
	req := reports.Request{
		Type:      reports.Type(r.ReportType),
		Format:    reports.Format(r.Format),
		ClientID:  r.ClientID,
		DriverID:  r.DriverID,
		VehicleID: r.VehicleID,
	}

	var err error
	if req.StartDate, err = parseDate(r.StartDate, "start_date"); err != nil {
		return reports.Request{}, err
	}
	if req.EndDate, err = parseDate(r.EndDate, "end_date"); err != nil {
		return reports.Request{}, err
	}
	return req, nil
}

func parseDate(s *string, field string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, apperror.NewValidation(field + " must be a YYYY-MM-DD date")
	}
	return &t, nil
}

// ReportJobResponse is the wire shape of a report job.
type ReportJobResponse struct {
	JobID       string `json:"job_id"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	Message     string `json:"message,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
	Error       string `json:"error,omitempty"`
}

// FromJob maps a job record to the response, deriving the download URL for
// completed jobs.
func FromJob(job *jobs.Job) ReportJobResponse {
	resp := ReportJobResponse{
		JobID:    job.ID,
		Status:   string(job.State),
		Progress: job.Progress,
		Message:  job.Message,
		Error:    job.Error,
	}
	if job.State == jobs.StateCompleted && job.ArtifactName != "" {
		resp.DownloadURL = "/api/v1/reports/download/" + job.ArtifactName
	}
	return resp
}
