package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps artifacts in a directory on disk.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates dir if needed and returns a store rooted there.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("local storage: directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve artifact directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &LocalStorage{dir: abs}, nil
}

// Save writes the artifact atomically and returns its absolute path.
func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	target, err := s.pathFor(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".artifact-*")
	if err != nil {
		return "", fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write artifact %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close artifact %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("store artifact %s: %w", name, err)
	}
	return target, nil
}

// Open returns a reader for a location previously returned by Save.
func (s *LocalStorage) Open(_ context.Context, location string) (io.ReadCloser, error) {
	target, err := s.pathFor(filepath.Base(location))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", location, err)
	}
	return f, nil
}

func (s *LocalStorage) pathFor(name string) (string, error) {
	clean := filepath.Base(filepath.Clean("/" + name))
	if clean == "/" || clean == "." || clean == "" {
		return "", fmt.Errorf("local storage: invalid artifact name %q", name)
	}
	return filepath.Join(s.dir, clean), nil
}

var _ ArtifactStore = (*LocalStorage)(nil)
