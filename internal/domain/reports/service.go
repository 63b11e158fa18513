package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fretor/internal/core/apperror"
	"fretor/internal/domain/jobs"
	"fretor/internal/domain/notify"
	"fretor/pkg/logger"
)

// Renderer writes one artifact format.
type Renderer interface {
	// Extension is the artifact file extension without the dot. A renderer
	// that degrades to another representation reports the real extension of
	// what it writes.
	Extension() string
	Render(w io.Writer, doc Document) error
}

// ArtifactWriter persists a finished artifact under the given name.
type ArtifactWriter interface {
	Save(ctx context.Context, name string, write func(w io.Writer) error) error
}

// Dispatcher queues background work. Dispatch must not block.
type Dispatcher interface {
	Dispatch(id string, tenantID int64, fn func(ctx context.Context)) error
}

// Observer is told when a job reaches a terminal state. The metrics layer
// satisfies this; a nil observer is a no-op.
type Observer interface {
	JobFinished(reportType, outcome string, elapsed time.Duration)
}

// Service drives report jobs end to end: validate, enqueue, execute with
// progress reporting, persist the artifact, notify.
type Service struct {
	store     jobs.Store
	gen       *Generator
	renderers map[Format]Renderer
	artifacts ArtifactWriter
	queue     Dispatcher
	notifier  notify.Notifier
	log       *logger.Logger
	tracer    trace.Tracer
	timeout   time.Duration
	now       func() time.Time
	observer  Observer
}

// SetObserver attaches a terminal-state observer. Call before the first
// Enqueue; the service does not synchronize this field.
func (s *Service) SetObserver(o Observer) { s.observer = o }

func (s *Service) observeFinished(reportType string, outcome string, elapsed time.Duration) {
	if s.observer != nil {
		s.observer.JobFinished(reportType, outcome, elapsed)
	}
}

// NewService wires the report pipeline. timeout bounds a single job's
// execution; zero means 10 minutes.
func NewService(
	store jobs.Store,
	gen *Generator,
	renderers map[Format]Renderer,
	artifacts ArtifactWriter,
	queue Dispatcher,
	notifier notify.Notifier,
	log *logger.Logger,
	timeout time.Duration,
	now func() time.Time,
) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:     store,
		gen:       gen,
		renderers: renderers,
		artifacts: artifacts,
		queue:     queue,
		notifier:  notifier,
		log:       log.WithComponent("reports"),
		tracer:    otel.Tracer("fretor/reports"),
		timeout:   timeout,
		now:       now,
	}
}

// Enqueue validates the request, registers a pending job and queues its
// execution. The returned job is in PENDING with progress 0.
func (s *Service) Enqueue(ctx context.Context, tenantID int64, req Request) (*jobs.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, ok := s.renderers[req.Format]; !ok {
		return nil, apperror.NewValidation(fmt.Sprintf("no renderer for format: %s", req.Format))
	}

	job := jobs.New(tenantID, string(req.Type), string(req.Format), s.now())
	params, err := req.MarshalParams()
	if err != nil {
		return nil, fmt.Errorf("encode report params: %w", err)
	}
	job.Params = params
	if err := s.store.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job record: %w", err)
	}

	jobID := job.ID
	err = s.queue.Dispatch(jobID, tenantID, func(ctx context.Context) {
		s.execute(ctx, jobID, tenantID, req)
	})
	if err != nil {
		if failErr := s.store.Fail(ctx, job.ID, "could not queue job"); failErr != nil {
			s.log.WithContext(ctx).Errorw("fail after dispatch error", "job_id", job.ID, "error", failErr)
		}
		return nil, apperror.NewInternal(fmt.Errorf("queue report job: %w", err))
	}

	s.log.WithContext(ctx).Infow("report job enqueued",
		"job_id", job.ID, "tenant_id", tenantID,
		"report_type", req.Type, "format", req.Format,
	)
	return job, nil
}

// Status returns the job's current state. Unknown ids, including jobs of
// other tenants, surface as not found.
func (s *Service) Status(ctx context.Context, tenantID int64, jobID string) (*jobs.Job, error) {
	job, err := s.store.Get(ctx, tenantID, jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return nil, apperror.NewNotFound("report job", jobID)
		}
		return nil, fmt.Errorf("load job: %w", err)
	}
	return job, nil
}

// VerifyArtifact checks that the named artifact was produced by one of the
// tenant's own jobs. Artifact names are guessable, so the download path must
// not serve a file just because it exists on disk.
func (s *Service) VerifyArtifact(ctx context.Context, tenantID int64, name string) error {
	_, err := s.store.FindByArtifact(ctx, tenantID, name)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return apperror.NewNotFound("report artifact", name)
		}
		return fmt.Errorf("resolve artifact owner: %w", err)
	}
	return nil
}

// Execute runs a claimed job to a terminal state. It is the entry point for
// the standalone worker, which picks up jobs it did not enqueue.
func (s *Service) Execute(ctx context.Context, job *jobs.Job) {
	req, err := ParseParams(job.Params)
	if err != nil {
		if failErr := s.store.Fail(ctx, job.ID, err.Error()); failErr != nil {
			s.log.Errorw("record job failure", "job_id", job.ID, "error", failErr)
		}
		s.notifier.ReportFailed(ctx, job.TenantID, job.ID, err.Error())
		return
	}
	s.execute(ctx, job.ID, job.TenantID, req)
}

// execute runs one job to a terminal state. Every failure path ends in
// FAILED; nothing is left dangling in PROGRESS short of a process crash.
func (s *Service) execute(baseCtx context.Context, jobID string, tenantID int64, req Request) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(baseCtx, s.timeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "reports.execute", trace.WithAttributes(
		attribute.String("job.id", jobID),
		attribute.Int64("tenant.id", tenantID),
		attribute.String("report.type", string(req.Type)),
		attribute.String("report.format", string(req.Format)),
	))
	defer span.End()

	fail := func(err error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		storeErr := s.store.Fail(context.WithoutCancel(ctx), jobID, err.Error())
		if storeErr != nil && !errors.Is(storeErr, jobs.ErrTerminalState) {
			s.log.Errorw("record job failure", "job_id", jobID, "error", storeErr)
		}
		s.observeFinished(string(req.Type), "failed", time.Since(started))
		s.notifier.ReportFailed(context.WithoutCancel(ctx), tenantID, jobID, err.Error())
	}

	// A panic in the generator, renderer or artifact store must still end the
	// job in FAILED; the worker pool's own recover would otherwise leave it
	// stranded in PROGRESS.
	defer func() {
		if r := recover(); r != nil {
			fail(fmt.Errorf("report generation panicked: %v", r))
		}
	}()

	step := func(progress int, message string) bool {
		err := s.store.SetProgress(ctx, jobID, progress, message)
		if err == nil {
			return true
		}
		s.log.Errorw("record job progress", "job_id", jobID, "progress", progress, "error", err)
		// Terminal means another writer already finished the job; anything
		// else is a store problem and the job must not stay in PROGRESS.
		if !errors.Is(err, jobs.ErrTerminalState) {
			fail(fmt.Errorf("record job progress: %w", err))
		}
		return false
	}

	if !step(10, "starting report generation") {
		return
	}
	if !step(30, "collecting data") {
		return
	}

	doc, err := s.gen.Build(ctx, tenantID, req)
	if err != nil {
		fail(err)
		return
	}

	if !step(70, "generating file") {
		return
	}

	renderer, ok := s.renderers[req.Format]
	if !ok {
		fail(fmt.Errorf("no renderer for format: %s", req.Format))
		return
	}

	artifactName := fmt.Sprintf("%s_report_%s.%s",
		req.Type, s.now().Format("20060102_150405"), renderer.Extension())

	err = s.artifacts.Save(ctx, artifactName, func(w io.Writer) error {
		return renderer.Render(w, doc)
	})
	if err != nil {
		fail(fmt.Errorf("write artifact: %w", err))
		return
	}

	if !step(90, "finalizing") {
		return
	}

	if err := s.store.Complete(ctx, jobID, artifactName); err != nil {
		fail(fmt.Errorf("complete job: %w", err))
		return
	}

	span.SetAttributes(attribute.String("report.artifact", artifactName))
	s.observeFinished(string(req.Type), "completed", time.Since(started))
	s.notifier.ReportCompleted(context.WithoutCancel(ctx), tenantID, jobID, artifactName)
}
