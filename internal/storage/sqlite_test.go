package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/gable/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, maxAge time.Duration) *TileCache {
	t.Helper()
	cache, err := NewTileCache(":memory:", maxAge)
	require.NoError(t, err)
	require.NoError(t, cache.Migrate(context.Background()))
	t.Cleanup(func() {
		_ = cache.Close()
	})
	return cache
}

func TestTileCache_PutGet(t *testing.T) {
	cache := newTestCache(t, 0)
	ctx := context.Background()

	tile := []byte("jpeg bytes")
	require.NoError(t, cache.Put(ctx, "geoportal", 17, 12345, 67890, tile))

	got, err := cache.Get(ctx, "geoportal", 17, 12345, 67890)
	require.NoError(t, err)
	assert.Equal(t, tile, got)
}

func TestTileCache_GetMiss(t *testing.T) {
	cache := newTestCache(t, 0)

	_, err := cache.Get(context.Background(), "geoportal", 17, 1, 1)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestTileCache_PutReplaces(t *testing.T) {
	cache := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "geoportal", 16, 7, 7, []byte("old")))
	require.NoError(t, cache.Put(ctx, "geoportal", 16, 7, 7, []byte("new")))

	got, err := cache.Get(ctx, "geoportal", 16, 7, 7)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	count, _, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTileCache_Expiry(t *testing.T) {
	cache := newTestCache(t, time.Nanosecond)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "geoportal", 17, 2, 3, []byte("stale")))

	_, err := cache.Get(ctx, "geoportal", 17, 2, 3)
	require.ErrorIs(t, err, common.ErrNotFound, "aged-out tiles should read as misses")
}

func TestTileCache_KeysAreDistinct(t *testing.T) {
	cache := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "geoportal", 17, 2, 3, []byte("a")))
	require.NoError(t, cache.Put(ctx, "geoportal", 18, 2, 3, []byte("b")))
	require.NoError(t, cache.Put(ctx, "other", 17, 2, 3, []byte("c")))

	got, err := cache.Get(ctx, "geoportal", 18, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)

	count, bytes, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, int64(3), bytes)
}

func TestTileCache_Prune(t *testing.T) {
	cache := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "geoportal", 17, 1, 1, []byte("x")))
	require.NoError(t, cache.Put(ctx, "geoportal", 17, 1, 2, []byte("y")))

	// A zero cutoff treats every already-written tile as expired.
	deleted, err := cache.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, _, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTileCache_Validation(t *testing.T) {
	cache := newTestCache(t, 0)
	ctx := context.Background()

	_, err := NewTileCache("  ", 0)
	require.ErrorIs(t, err, ErrEmptyString)

	err = cache.Put(ctx, "", 17, 1, 1, []byte("x"))
	require.ErrorIs(t, err, ErrEmptyString)

	err = cache.Put(ctx, "geoportal", 17, 1, 1, nil)
	require.ErrorIs(t, err, ErrEmptyTile)
}

func TestValidateContext(t *testing.T) {
	var missing context.Context
	require.ErrorIs(t, validateContext(missing), ErrNilContext)
	require.NoError(t, validateContext(context.Background()))
}
