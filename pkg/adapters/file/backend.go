package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/testwrap/pkg/ports"
)

// Backend implements ports.Backend on a single file.
type Backend struct {
	Path string
}

// New creates a file Backend for path.
func New(path string) *Backend {
	return &Backend{Path: path}
}

// Write replaces the file content atomically.
// It writes to a temporary file in the same directory, syncs it and renames it over the destination.
func (b *Backend) Write(ctx context.Context, data []byte) error {
	if b.Path == "" {
		return errors.New("settings path cannot be empty")
	}

	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure settings directory: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(b.Path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if info, err := os.Stat(b.Path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("settings path %s is a directory", b.Path)
		}
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove existing settings file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, b.Path); err != nil {
		return fmt.Errorf("failed to rename temp file to settings file: %w", err)
	}
	return nil
}

// Read returns the file content, or ports.ErrNotFound if the file does not exist.
func (b *Backend) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, b.Path)
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return data, nil
}

// String returns the backing path.
func (b *Backend) String() string {
	return b.Path
}
