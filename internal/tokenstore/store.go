package tokenstore

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend names accepted by Open (config key storage.backend).
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a credential store that must be closed after use. All backends
// satisfy api.Storage.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Open returns the store for backend. path is ignored for BackendMemory.
func Open(ctx context.Context, backend, path string, logger *slog.Logger) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(ctx, path, logger)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("tokenstore: unknown backend %q", backend)
	}
}
