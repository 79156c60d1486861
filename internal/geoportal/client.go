package geoportal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Veraticus/gable/internal/common"
	"github.com/Veraticus/gable/internal/storage"
)

// cacheSource keys geoportal tiles in the tile cache.
const cacheSource = "geoportal"

// Client fetches orthophoto tiles from the WMTS service. A nil cache
// disables caching; everything still works, just slower.
type Client struct {
	httpClient *http.Client
	cache      *storage.TileCache
	baseURL    string
	retry      common.RetryOptions
}

// NewClient creates a WMTS tile client.
func NewClient(baseURL string, timeout time.Duration, cache *storage.TileCache) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		baseURL:    baseURL,
		retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			Multiplier:   2,
		},
	}
}

// GetTile returns the encoded tile image for one matrix cell,
// consulting the cache before the network.
func (c *Client) GetTile(ctx context.Context, zoom, row, col int) ([]byte, error) {
	if c.cache != nil {
		data, err := c.cache.Get(ctx, cacheSource, zoom, row, col)
		if err == nil {
			slog.Debug("Tile cache hit", "zoom", zoom, "row", row, "col", col)
			return data, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			slog.Warn("Tile cache read failed", "error", err)
		}
	}

	var data []byte
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		data, fetchErr = c.fetchTile(ctx, zoom, row, col)
		return fetchErr
	}, c.retry)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, cacheSource, zoom, row, col, data); err != nil {
			slog.Warn("Tile cache write failed", "error", err)
		}
	}
	return data, nil
}

func (c *Client) fetchTile(ctx context.Context, zoom, row, col int) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse WMTS URL: %w", err)
	}

	q := u.Query()
	q.Set("SERVICE", "WMTS")
	q.Set("REQUEST", "GetTile")
	q.Set("VERSION", "1.0.0")
	q.Set("LAYER", "ORTOFOTOMAPA")
	q.Set("STYLE", "default")
	q.Set("FORMAT", "image/jpeg")
	q.Set("TILEMATRIXSET", "EPSG:2180")
	q.Set("TILEMATRIX", fmt.Sprintf("EPSG:2180:%d", zoom))
	q.Set("TILEROW", strconv.Itoa(row))
	q.Set("TILECOL", strconv.Itoa(col))
	u.RawQuery = q.Encode()

	slog.Debug("Fetching WMTS tile", "zoom", zoom, "row", row, "col", col)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("tile %d/%d/%d does not exist", zoom, row, col),
			Retryable: false,
		}
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("tile service throttled request: %w", common.ErrRateLimit)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tile service error %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("tile service returned empty body for %d/%d/%d", zoom, row, col)
	}
	return data, nil
}
