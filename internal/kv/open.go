package kv

import (
	"context"
	"fmt"

	"github.com/existflow/flownote/internal/config"
	"github.com/existflow/flownote/internal/logger"
)

// Open returns the storage backend selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on exit")
		return NewMemory(), nil
	case config.StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("storage %q needs database_url or DATABASE_URL", cfg.Storage)
		}
		return OpenPostgres(ctx, cfg.DatabaseURL)
	case config.StorageSQLite, "":
		logger.Debug("Opening database", logger.F("path", cfg.DBPath))
		return OpenSQLite(cfg.DBPath)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}
