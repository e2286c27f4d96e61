package infra

import (
	"fmt"

	"github.com/coinquest/engine/internal/storage"
)

// OpenStore builds the configured blob store. The returned close func is
// always safe to call.
func OpenStore(cfg *Config) (storage.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.StorageBackend {
	case BackendMemory:
		return storage.NewInMemoryStore(), noop, nil
	case BackendFile:
		s, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return s, noop, nil
	case BackendSQLite:
		s, err := storage.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend: %q", cfg.StorageBackend)
}
