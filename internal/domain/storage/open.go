package storage

import (
	"fmt"

	"github.com/GriffinCanCode/deskd/internal/shared/paths"
)

// Backend kinds accepted by Open
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// Open builds the backend named by kind below dataDir
func Open(kind, dataDir string) (Backend, error) {
	layout := paths.New(dataDir)

	switch kind {
	case KindMemory:
		return NewMemoryBackend(), nil
	case KindFile, "":
		return NewFileBackend(layout.RecordsDir())
	case KindSQLite:
		return OpenSQLite(layout.Database())
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
