// Package backend opens the bill store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/divvy/internal/config"
	"github.com/mmynk/divvy/internal/storage"
	"github.com/mmynk/divvy/internal/storage/memory"
	"github.com/mmynk/divvy/internal/storage/postgres"
	"github.com/mmynk/divvy/internal/storage/sqlite"
)

// Open returns the store named by cfg.Driver. The caller closes it.
func Open(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", "sqlite", "database", cfg.SQLitePath)
		return store, nil
	case "postgres":
		store, err := postgres.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", "postgres")
		return store, nil
	case "memory":
		slog.Warn("Using in-memory storage; bills are lost on exit")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
