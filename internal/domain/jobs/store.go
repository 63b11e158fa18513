package jobs

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the job id is unknown to the store.
	ErrNotFound = errors.New("job not found")
	// ErrTerminalState means the job already completed or failed.
	ErrTerminalState = errors.New("job is in a terminal state")
	// ErrStaleProgress means the update would move progress backwards.
	ErrStaleProgress = errors.New("progress update is stale")
)

// Store persists job records. Implementations must enforce the lifecycle:
// no transitions out of a terminal state and monotonically increasing
// progress. Lookups are tenant-scoped; a job id from another tenant behaves
// as not found.
type Store interface {
	Create(ctx context.Context, job *Job) error
	Get(ctx context.Context, tenantID int64, id string) (*Job, error)
	// SetProgress moves the job into PROGRESS with the given percentage and
	// step message.
	SetProgress(ctx context.Context, id string, progress int, message string) error
	// Complete transitions the job to COMPLETED and records the artifact.
	Complete(ctx context.Context, id string, artifactName string) error
	// Fail transitions the job to FAILED and records the error message.
	Fail(ctx context.Context, id string, errMsg string) error
	// FindByArtifact resolves the tenant's job that produced the named
	// artifact. Artifacts of other tenants behave as not found.
	FindByArtifact(ctx context.Context, tenantID int64, artifactName string) (*Job, error)
}
