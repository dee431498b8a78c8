package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	recordsDir   = "records"
	databaseFile = "desk.db"
	recordExt    = ".json"
)

// Layout resolves paths below a data directory
type Layout struct {
	Root string
}

// New returns the layout rooted at dir
func New(dir string) Layout {
	return Layout{Root: filepath.Clean(dir)}
}

// RecordsDir returns the directory holding JSON record files
func (l Layout) RecordsDir() string {
	return filepath.Join(l.Root, recordsDir)
}

// Database returns the SQLite database path
func (l Layout) Database() string {
	return filepath.Join(l.Root, databaseFile)
}

// RecordFile returns the file for a record key inside dir
func RecordFile(dir, key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(dir, key+recordExt), nil
}

// ValidateKey checks that a record key is a single plain path element
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("record key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("record key %q contains path components", key)
	}
	if filepath.Clean(key) != key {
		return fmt.Errorf("record key %q is not clean", key)
	}
	return nil
}
