package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskd/internal/infrastructure/monitoring"
)

// Persisted record keys
const (
	KeyInstalled = "installed"
	KeyDesktop   = "desktop"
	KeySetting   = "setting"
)

// ErrNotFound is returned by backends for absent records
var ErrNotFound = errors.New("record not found")

// Backend stores raw record bytes by key
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Adapter serializes records to JSON over a backend
type Adapter struct {
	backend Backend
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewAdapter creates an adapter over backend
func NewAdapter(backend Backend, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		backend: backend,
		logger:  logger.Named("storage"),
	}
}

// NewMemoryAdapter returns an adapter over a fresh in-memory backend
func NewMemoryAdapter() *Adapter {
	return NewAdapter(NewMemoryBackend(), nil)
}

// WithMetrics adds metrics tracking to the adapter
func (a *Adapter) WithMetrics(metrics *monitoring.Metrics) *Adapter {
	a.metrics = metrics
	return a
}

// Load decodes the record at key into out. It reports false, leaving the
// caller to fall back to a default, when the record is absent or corrupt.
func (a *Adapter) Load(ctx context.Context, key string, out interface{}) bool {
	data, err := a.backend.Read(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.metrics.RecordStorageLoad(key, "miss")
			return false
		}
		a.logger.Warn("Failed to read record", zap.String("key", key), zap.Error(err))
		a.metrics.RecordStorageLoad(key, "error")
		return false
	}

	if err := sonic.ConfigStd.Unmarshal(data, out); err != nil {
		a.logger.Warn("Discarding corrupt record", zap.String("key", key), zap.Error(err))
		a.metrics.RecordStorageLoad(key, "corrupt")
		return false
	}

	a.metrics.RecordStorageLoad(key, "hit")
	return true
}

// LoadOr returns the record at key, or def when it is absent or corrupt
func LoadOr[T any](ctx context.Context, a *Adapter, key string, def T) T {
	var v T
	if !a.Load(ctx, key, &v) {
		return def
	}
	return v
}

// Save serializes v and overwrites the record at key
func (a *Adapter) Save(ctx context.Context, key string, v interface{}) error {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		a.metrics.RecordStorageWrite(key, err)
		return fmt.Errorf("failed to marshal record %s: %w", key, err)
	}

	if err := a.backend.Write(ctx, key, data); err != nil {
		a.logger.Error("Failed to write record", zap.String("key", key), zap.Error(err))
		a.metrics.RecordStorageWrite(key, err)
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}

	a.metrics.RecordStorageWrite(key, nil)
	return nil
}

// Remove deletes the record at key; removing an absent record is not an error
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete record %s: %w", key, err)
	}
	return nil
}

// Close releases the backend
func (a *Adapter) Close() error {
	return a.backend.Close()
}
