package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/deskd/internal/shared/paths"
)

// FileBackend stores each record as <dir>/<key>.json
type FileBackend struct {
	dir string
}

// NewFileBackend creates the record directory if needed
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create record directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) Read(_ context.Context, key string) ([]byte, error) {
	path, err := paths.RecordFile(f.dir, key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Write replaces the record file atomically via rename, so readers never
// observe a half-written record.
func (f *FileBackend) Write(_ context.Context, key string, data []byte) error {
	path, err := paths.RecordFile(f.dir, key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func (f *FileBackend) Delete(_ context.Context, key string) error {
	path, err := paths.RecordFile(f.dir, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Close is a no-op
func (f *FileBackend) Close() error { return nil }

// Dir returns the record directory
func (f *FileBackend) Dir() string {
	return filepath.Clean(f.dir)
}
