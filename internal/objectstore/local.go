package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps objects as plain files under a root directory.
// It backs the devserver and offline runs.
type LocalStore struct {
	root   string
	prefix string
}

func NewLocal(root, prefix string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving store root %s: %w", root, err)
	}
	return &LocalStore{root: abs, prefix: prefix}, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, size int64) (string, error) {
	target := s.path(key)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", ErrTransfer, filepath.Dir(target), err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", ErrTransfer, target, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: writing %s: %w", ErrTransfer, target, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: closing %s: %w", ErrTransfer, target, err)
	}

	return s.URI(key), nil
}

func (s *LocalStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrTransfer, s.URI(key), err)
	}
	return f, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: deleting %s: %w", ErrTransfer, s.URI(key), err)
	}
	return nil
}

func (s *LocalStore) URI(key string) string {
	return "file://" + s.path(key)
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.root, s.prefix, key)
}
