package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/haskel/mlpipe/internal/config"
)

// ErrTransfer wraps every upload/download failure against the store.
var ErrTransfer = errors.New("transfer failed")

// Store is a minimal object store: keys under a configured prefix,
// locator URIs the training platform can reference.
type Store interface {
	// Put uploads size bytes from r under key and returns the locator URI.
	Put(ctx context.Context, key string, r io.Reader, size int64) (string, error)
	// Get opens the object stored under key. The caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object under key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
	// URI returns the locator an object under key would have.
	URI(key string) string
}

// New selects a backend from the storage config.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "s3":
		return NewS3(cfg.Bucket, cfg.Region, cfg.Prefix)
	case "local":
		return NewLocal(cfg.LocalDir, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
