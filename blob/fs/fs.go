package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/greation/sermonkit/blob"
)

// Backend stores each document as a file under a root directory.
// Writes go to a temporary file in the same directory followed by a
// rename, so readers never observe a partial document.
type Backend struct {
	dir string
}

var _ blob.Backend = (*Backend)(nil)

// NewBackend creates a filesystem backend rooted at dir.
// The directory is created if it does not exist.
func NewBackend(dir string) (*Backend, error) {
	if dir == "" {
		return nil, fmt.Errorf("fs backend: directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("fs backend: create directory: %w", err)
	}
	return &Backend{dir: dir}, nil
}

// Fetch returns the document stored under key.
func (b *Backend) Fetch(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil, blob.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fs backend: read %s: %w", key, err)
	}
	return data, nil
}

// Store replaces the document under key via temp file and rename.
func (b *Backend) Store(_ context.Context, key string, data []byte) error {
	target := b.path(key)

	tmp, err := os.CreateTemp(b.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("fs backend: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("fs backend: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("fs backend: close %s: %w", key, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("fs backend: replace %s: %w", key, err)
	}
	return nil
}

func (b *Backend) path(key string) string {
	return filepath.Join(b.dir, key)
}
