// Package artifact stores generated report files on disk, optionally
// zstd-compressed, and serves them back for download.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"fretor/internal/core/apperror"
)

// ErrInvalidName is returned for artifact names that could escape the store
// directory.
var ErrInvalidName = errors.New("invalid artifact name")

// Store writes artifacts under a single directory. When compression is on,
// files are stored with a .zst suffix and transparently decompressed on Open.
type Store struct {
	dir      string
	compress bool
}

// NewStore creates the directory if needed.
func NewStore(dir string, compress bool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{dir: dir, compress: compress}, nil
}

// validName rejects path separators and dot segments. Artifact names are
// always generated server-side, but download requests carry client input.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	return filepath.Base(name) == name
}

// Save writes one artifact atomically: to a temp file first, renamed into
// place on success.
func (s *Store) Save(ctx context.Context, name string, write func(w io.Writer) error) error {
	if !validName(name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	final := filepath.Join(s.dir, s.storedName(name))
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	var w io.Writer = tmp
	var enc *zstd.Encoder
	if s.compress {
		enc, err = zstd.NewWriter(tmp)
		if err != nil {
			return fmt.Errorf("create zstd writer: %w", err)
		}
		w = enc
	}

	if err := write(w); err != nil {
		return err
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return fmt.Errorf("flush zstd writer: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("finalize artifact: %w", err)
	}
	return nil
}

// Open returns a reader for the named artifact. Unknown names map to a
// not-found error regardless of whether the name was malformed.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, apperror.NewNotFound("report artifact", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.dir, s.storedName(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperror.NewNotFound("report artifact", name)
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}

	if !s.compress {
		return f, nil
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open zstd reader: %w", err)
	}
	return &decompressedReader{dec: dec, file: f}, nil
}

func (s *Store) storedName(name string) string {
	if s.compress {
		return name + ".zst"
	}
	return name
}

type decompressedReader struct {
	dec  *zstd.Decoder
	file *os.File
}

func (r *decompressedReader) Read(p []byte) (int, error) { return r.dec.Read(p) }

func (r *decompressedReader) Close() error {
	r.dec.Close()
	return r.file.Close()
}
