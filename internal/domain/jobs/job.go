// Package jobs tracks asynchronous report jobs through a strict lifecycle:
// PENDING -> PROGRESS -> COMPLETED | FAILED. Terminal states are final and
// progress never moves backwards.
package jobs

import (
	"time"

	"github.com/google/uuid"
)

// State is a job lifecycle state.
type State string

const (
	StatePending   State = "PENDING"
	StateProgress  State = "PROGRESS"
	StateCompleted State = "COMPLETED"
	StateFailed    State = "FAILED"
)

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Job is one asynchronous report generation job. ArtifactName is set only in
// COMPLETED, Error only in FAILED. Params carries the serialized request so
// a standalone worker can execute jobs it did not enqueue.
type Job struct {
	ID           string    `db:"id" json:"job_id"`
	TenantID     int64     `db:"tenant_id" json:"-"`
	Type         string    `db:"report_type" json:"report_type"`
	Format       string    `db:"format" json:"format"`
	Params       []byte    `db:"params" json:"-"`
	State        State     `db:"state" json:"state"`
	Progress     int       `db:"progress" json:"progress"`
	Message      string    `db:"message" json:"message,omitempty"`
	ArtifactName string    `db:"artifact_name" json:"artifact_name,omitempty"`
	Error        string    `db:"error" json:"error,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// New creates a pending job for the tenant.
func New(tenantID int64, reportType, format string, now time.Time) *Job {
	return &Job{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Type:      reportType,
		Format:    format,
		State:     StatePending,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
