package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore reads keys as file paths. Relative paths are resolved against dir,
// or against the working directory if dir is empty.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) Get(_ context.Context, k Key) (Value, error) {
	b, err := os.ReadFile(s.pathFor(k))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return b, err
}

func (s *DiskStore) pathFor(key Key) string {
	p := string(key)
	if s.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.dir, p)
}
