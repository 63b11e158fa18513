package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestStore() *MemoryStore {
	return NewMemoryStore(func() time.Time { return jobNow })
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	job := New(1, "trips", "json", jobNow)
	require.NoError(t, store.Create(ctx, job))

	got, err := store.Get(ctx, 1, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatePending, got.State)
	assert.Zero(t, got.Progress)

	require.NoError(t, store.SetProgress(ctx, job.ID, 30, "collecting data"))
	got, err = store.Get(ctx, 1, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StateProgress, got.State)
	assert.Equal(t, 30, got.Progress)
	assert.Equal(t, "collecting data", got.Message)

	require.NoError(t, store.Complete(ctx, job.ID, "trips_report_20240601_100000.json"))
	got, err = store.Get(ctx, 1, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, got.State)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, "trips_report_20240601_100000.json", got.ArtifactName)
	assert.Empty(t, got.Message)
}

func TestMemoryStore_ProgressIsMonotonic(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	job := New(1, "trips", "json", jobNow)
	require.NoError(t, store.Create(ctx, job))

	require.NoError(t, store.SetProgress(ctx, job.ID, 70, "generating file"))

	err := store.SetProgress(ctx, job.ID, 30, "collecting data")
	assert.ErrorIs(t, err, ErrStaleProgress)

	got, err := store.Get(ctx, 1, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, got.Progress)
	assert.Equal(t, "generating file", got.Message)

	// Equal progress is allowed, only regression is rejected.
	assert.NoError(t, store.SetProgress(ctx, job.ID, 70, "still generating"))
}

func TestMemoryStore_TerminalStatesAreFinal(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	completed := New(1, "trips", "json", jobNow)
	require.NoError(t, store.Create(ctx, completed))
	require.NoError(t, store.Complete(ctx, completed.ID, "out.json"))

	assert.ErrorIs(t, store.SetProgress(ctx, completed.ID, 99, "late"), ErrTerminalState)
	assert.ErrorIs(t, store.Fail(ctx, completed.ID, "late failure"), ErrTerminalState)
	assert.ErrorIs(t, store.Complete(ctx, completed.ID, "other.json"), ErrTerminalState)

	failed := New(1, "trips", "json", jobNow)
	require.NoError(t, store.Create(ctx, failed))
	require.NoError(t, store.Fail(ctx, failed.ID, "boom"))

	assert.ErrorIs(t, store.Complete(ctx, failed.ID, "out.json"), ErrTerminalState)

	got, err := store.Get(ctx, 1, failed.ID)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, got.State)
	assert.Equal(t, "boom", got.Error)
}

func TestMemoryStore_TenantScoping(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	job := New(1, "trips", "json", jobNow)
	require.NoError(t, store.Create(ctx, job))

	_, err := store.Get(ctx, 2, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, 1, "unknown-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_FindByArtifact(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	job := New(1, "trips", "json", jobNow)
	require.NoError(t, store.Create(ctx, job))

	// Nothing to find while the job has no artifact yet.
	_, err := store.FindByArtifact(ctx, 1, "trips_report_20240601_100000.json")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Complete(ctx, job.ID, "trips_report_20240601_100000.json"))

	got, err := store.FindByArtifact(ctx, 1, "trips_report_20240601_100000.json")
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)

	_, err = store.FindByArtifact(ctx, 2, "trips_report_20240601_100000.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	job := New(1, "trips", "json", jobNow)
	require.NoError(t, store.Create(ctx, job))

	got, err := store.Get(ctx, 1, job.ID)
	require.NoError(t, err)
	got.Progress = 55

	again, err := store.Get(ctx, 1, job.ID)
	require.NoError(t, err)
	assert.Zero(t, again.Progress)
}
