package jobs

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process Store used when jobs run inside the API
// server. State survives only for the life of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	now  func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{jobs: make(map[string]*Job), now: now}
}

func (s *MemoryStore) Create(_ context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, tenantID int64, id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok || job.TenantID != tenantID {
		return nil, ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (s *MemoryStore) SetProgress(_ context.Context, id string, progress int, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	if job.State.Terminal() {
		return ErrTerminalState
	}
	if progress < job.Progress {
		return ErrStaleProgress
	}

	job.State = StateProgress
	job.Progress = progress
	job.Message = message
	job.UpdatedAt = s.now()
	return nil
}

func (s *MemoryStore) Complete(_ context.Context, id string, artifactName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	if job.State.Terminal() {
		return ErrTerminalState
	}

	job.State = StateCompleted
	job.Progress = 100
	job.Message = ""
	job.ArtifactName = artifactName
	job.UpdatedAt = s.now()
	return nil
}

func (s *MemoryStore) Fail(_ context.Context, id string, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	if job.State.Terminal() {
		return ErrTerminalState
	}

	job.State = StateFailed
	job.Message = ""
	job.Error = errMsg
	job.UpdatedAt = s.now()
	return nil
}

func (s *MemoryStore) FindByArtifact(_ context.Context, tenantID int64, artifactName string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.TenantID == tenantID && job.ArtifactName != "" && job.ArtifactName == artifactName {
			cp := *job
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}
