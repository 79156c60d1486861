// Package storage provides the data persistence layer for fetched map
// tiles. Caching tiles keeps repeated lookups of the same area from
// hammering the public tile services.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/gable/internal/common"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrEmptyTile   = errors.New("tile data cannot be empty")
)

// TileCache stores raw tile images keyed by source, zoom, and tile
// matrix position.
type TileCache struct {
	db     *sql.DB
	dbPath string
	maxAge time.Duration
}

// NewTileCache creates a tile cache backed by SQLite. A maxAge of zero
// disables expiry.
func NewTileCache(dbPath string, maxAge time.Duration) (*TileCache, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	return &TileCache{
		db:     db,
		dbPath: dbPath,
		maxAge: maxAge,
	}, nil
}

// Close closes the database connection.
func (c *TileCache) Close() error {
	return c.db.Close()
}

// Get returns the cached tile image, or common.ErrNotFound on a miss or
// when the cached copy has aged out.
func (c *TileCache) Get(ctx context.Context, source string, zoom, row, col int) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(source, "source"); err != nil {
		return nil, err
	}

	var data []byte
	var fetchedAt time.Time
	err := c.db.QueryRowContext(ctx,
		`SELECT data, fetched_at FROM tiles
		 WHERE source = ? AND zoom = ? AND tile_row = ? AND tile_col = ?`,
		source, zoom, row, col).Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tile: %w", err)
	}

	if c.maxAge > 0 && time.Since(fetchedAt) > c.maxAge {
		return nil, common.ErrNotFound
	}

	return data, nil
}

// Put stores a tile image, replacing any previous copy of the same tile.
func (c *TileCache) Put(ctx context.Context, source string, zoom, row, col int, data []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(source, "source"); err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrEmptyTile
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO tiles (source, zoom, tile_row, tile_col, data, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source, zoom, tile_row, tile_col)
		 DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at`,
		source, zoom, row, col, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store tile: %w", err)
	}
	return nil
}

// Prune removes tiles fetched before the cutoff and returns how many
// were deleted.
func (c *TileCache) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	res, err := c.db.ExecContext(ctx,
		`DELETE FROM tiles WHERE fetched_at < ?`,
		time.Now().UTC().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to prune tiles: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports the number of cached tiles and their total size in bytes.
func (c *TileCache) Stats(ctx context.Context) (count, bytes int64, err error) {
	if err := validateContext(ctx); err != nil {
		return 0, 0, err
	}

	err = c.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(data)), 0) FROM tiles`).Scan(&count, &bytes)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return count, bytes, nil
}

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}
