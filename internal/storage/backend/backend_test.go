package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/divvy/internal/config"
	"github.com/mmynk/divvy/internal/storage/memory"
	"github.com/mmynk/divvy/internal/storage/sqlite"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite", func(t *testing.T) {
		store, err := Open(ctx, config.StorageConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "nested", "bills.db"),
		})
		require.NoError(t, err)
		defer store.Close()
		require.IsType(t, &sqlite.SQLiteStore{}, store)
	})

	t.Run("memory", func(t *testing.T) {
		store, err := Open(ctx, config.StorageConfig{Driver: "memory"})
		require.NoError(t, err)
		defer store.Close()
		require.IsType(t, &memory.MemoryStore{}, store)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Open(ctx, config.StorageConfig{Driver: "mysql"})
		require.ErrorContains(t, err, "mysql")
	})
}
