package objectstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OpenURI opens a file:// locator produced by a LocalStore. The
// devserver resolves uploaded data and artifacts through it; s3://
// locators are only ever dereferenced by the managed platform itself.
func OpenURI(uri string) (io.ReadCloser, error) {
	path, ok := strings.CutPrefix(uri, "file://")
	if !ok {
		return nil, fmt.Errorf("%w: unsupported locator %q", ErrTransfer, uri)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrTransfer, uri, err)
	}
	return f, nil
}

// WriteURI writes data to a file:// locator, creating parent directories.
func WriteURI(uri string, data []byte) error {
	path, ok := strings.CutPrefix(uri, "file://")
	if !ok {
		return fmt.Errorf("%w: unsupported locator %q", ErrTransfer, uri)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrTransfer, filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrTransfer, uri, err)
	}
	return nil
}
