package artifact

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fretor/internal/core/apperror"
)

func TestStore_SaveAndOpen(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir(), false)
	require.NoError(t, err)

	err = store.Save(ctx, "trips_report_20240601_100000.json", func(w io.Writer) error {
		_, werr := io.WriteString(w, `{"report_type":"trips"}`)
		return werr
	})
	require.NoError(t, err)

	r, err := store.Open(ctx, "trips_report_20240601_100000.json")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, `{"report_type":"trips"}`, string(data))
}

func TestStore_CompressedRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir(), true)
	require.NoError(t, err)

	payload := strings.Repeat("trip data row\n", 1000)
	err = store.Save(ctx, "big.json", func(w io.Writer) error {
		_, werr := io.WriteString(w, payload)
		return werr
	})
	require.NoError(t, err)

	r, err := store.Open(ctx, "big.json")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
}

func TestStore_RejectsTraversalNames(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir(), false)
	require.NoError(t, err)

	for _, name := range []string{"../etc/passwd", "a/b.json", `a\b.json`, "..", "", "."} {
		err := store.Save(ctx, name, func(io.Writer) error { return nil })
		assert.ErrorIs(t, err, ErrInvalidName, "save %q", name)

		_, err = store.Open(ctx, name)
		assert.True(t, apperror.IsNotFound(err), "open %q", name)
	}
}

func TestStore_OpenUnknownIsNotFound(t *testing.T) {
	store, err := NewStore(t.TempDir(), false)
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "missing.json")
	assert.True(t, apperror.IsNotFound(err))
}

func TestStore_FailedWriteLeavesNoArtifact(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir(), false)
	require.NoError(t, err)

	err = store.Save(ctx, "broken.json", func(io.Writer) error {
		return io.ErrUnexpectedEOF
	})
	require.Error(t, err)

	_, err = store.Open(ctx, "broken.json")
	assert.True(t, apperror.IsNotFound(err))
}
