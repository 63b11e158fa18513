package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"fretor/internal/domain/jobs"
)

// JobRepo implements jobs.Store on the shared report_jobs table. The
// lifecycle rules are enforced with guarded UPDATEs, so concurrent writers
// (API server and standalone worker) cannot regress a job.
type JobRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewJobRepo creates the Postgres job store.
func NewJobRepo(pool *pgxpool.Pool, now func() time.Time) *JobRepo {
	if now == nil {
		now = time.Now
	}
	return &JobRepo{pool: pool, now: now}
}

var _ jobs.Store = (*JobRepo)(nil)

func (r *JobRepo) Create(ctx context.Context, job *jobs.Job) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO report_jobs
			(id, tenant_id, report_type, format, params, state, progress, message,
			 artifact_name, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, job.ID, job.TenantID, job.Type, job.Format, job.Params, job.State, job.Progress,
		job.Message, job.ArtifactName, job.Error, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepo) Get(ctx context.Context, tenantID int64, id string) (*jobs.Job, error) {
	var job jobs.Job
	err := pgxscan.Get(ctx, r.pool, &job, `
		SELECT id, tenant_id, report_type, format, params, state, progress, message,
		       artifact_name, error, created_at, updated_at
		FROM report_jobs
		WHERE id = $1 AND tenant_id = $2
	`, id, tenantID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, jobs.ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

func (r *JobRepo) SetProgress(ctx context.Context, id string, progress int, message string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE report_jobs
		SET state = $2, progress = $3, message = $4, updated_at = $5
		WHERE id = $1
		  AND state IN ('PENDING', 'PROGRESS')
		  AND progress <= $3
	`, id, jobs.StateProgress, progress, message, r.now())
	if err != nil {
		return fmt.Errorf("update job progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyRejected(ctx, id, progress)
	}
	return nil
}

func (r *JobRepo) Complete(ctx context.Context, id string, artifactName string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE report_jobs
		SET state = $2, progress = 100, message = '', artifact_name = $3, updated_at = $4
		WHERE id = $1 AND state IN ('PENDING', 'PROGRESS')
	`, id, jobs.StateCompleted, artifactName, r.now())
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyRejected(ctx, id, -1)
	}
	return nil
}

func (r *JobRepo) Fail(ctx context.Context, id string, errMsg string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE report_jobs
		SET state = $2, message = '', error = $3, updated_at = $4
		WHERE id = $1 AND state IN ('PENDING', 'PROGRESS')
	`, id, jobs.StateFailed, errMsg, r.now())
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyRejected(ctx, id, -1)
	}
	return nil
}

func (r *JobRepo) FindByArtifact(ctx context.Context, tenantID int64, artifactName string) (*jobs.Job, error) {
	var job jobs.Job
	err := pgxscan.Get(ctx, r.pool, &job, `
		SELECT id, tenant_id, report_type, format, params, state, progress, message,
		       artifact_name, error, created_at, updated_at
		FROM report_jobs
		WHERE tenant_id = $1 AND artifact_name = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, tenantID, artifactName)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, jobs.ErrNotFound
		}
		return nil, fmt.Errorf("find job by artifact: %w", err)
	}
	return &job, nil
}

// ClaimPending atomically claims up to limit PENDING jobs for execution by
// moving them into PROGRESS. SKIP LOCKED keeps concurrent workers from
// claiming the same job.
func (r *JobRepo) ClaimPending(ctx context.Context, limit int) ([]*jobs.Job, error) {
	var claimed []*jobs.Job
	err := pgxscan.Select(ctx, r.pool, &claimed, `
		UPDATE report_jobs
		SET state = $1, updated_at = $2
		WHERE id IN (
			SELECT id FROM report_jobs
			WHERE state = 'PENDING'
			ORDER BY created_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, tenant_id, report_type, format, params, state, progress,
		          message, artifact_name, error, created_at, updated_at
	`, jobs.StateProgress, r.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("claim pending jobs: %w", err)
	}
	return claimed, nil
}

// classifyRejected distinguishes why a guarded UPDATE matched no row:
// missing job, terminal state, or a stale progress value.
func (r *JobRepo) classifyRejected(ctx context.Context, id string, progress int) error {
	var row struct {
		State    jobs.State `db:"state"`
		Progress int        `db:"progress"`
	}
	err := pgxscan.Get(ctx, r.pool, &row, `
		SELECT state, progress FROM report_jobs WHERE id = $1
	`, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return jobs.ErrNotFound
		}
		return fmt.Errorf("inspect rejected job update: %w", err)
	}
	if row.State.Terminal() {
		return jobs.ErrTerminalState
	}
	if progress >= 0 && progress < row.Progress {
		return jobs.ErrStaleProgress
	}
	// Lost a race with a concurrent writer that advanced the job.
	return jobs.ErrStaleProgress
}
