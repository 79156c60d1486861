package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/gable/internal/config"
	"github.com/Veraticus/gable/internal/storage"
)

// initTileCache opens the tile cache with migrations applied. A nil
// cache is a valid return and means caching is turned off.
func initTileCache(ctx context.Context) (*storage.TileCache, error) {
	cfg := config.LoadCacheConfig()
	if cfg.Disabled {
		slog.Info("tile cache disabled")
		return nil, nil
	}

	cache, err := storage.NewTileCache(cfg.Path, cfg.MaxAge)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := cache.Migrate(ctx); err != nil {
		_ = cache.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return cache, nil
}
