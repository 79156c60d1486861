package geoportal

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/Veraticus/gable/internal/common"
)

// GoogleStaticMapsURL is the satellite imagery fallback endpoint.
const GoogleStaticMapsURL = "https://maps.googleapis.com/maps/api/staticmap"

// googleMaxDim is the largest image edge the static maps API serves on
// the standard plan. Bigger requests are fetched at the cap and
// upscaled.
const googleMaxDim = 640

// GoogleClient fetches satellite imagery from the Google static maps
// API.
type GoogleClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewGoogleClient creates a static maps client.
func NewGoogleClient(baseURL string, timeout time.Duration) *GoogleClient {
	return &GoogleClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// FetchMap returns a satellite image centered on the GPS coordinates.
// The result always has the requested dimensions.
func (g *GoogleClient) FetchMap(ctx context.Context, lat, lon float64, width, height, zoom int, apiKey string) (image.Image, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: google maps api key", common.ErrMissingConfig)
	}

	reqW := min(width, googleMaxDim)
	reqH := min(height, googleMaxDim)

	u, err := url.Parse(g.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse static maps URL: %w", err)
	}
	q := u.Query()
	q.Set("center", fmt.Sprintf("%f,%f", lat, lon))
	q.Set("zoom", strconv.Itoa(zoom))
	q.Set("size", fmt.Sprintf("%dx%d", reqW, reqH))
	q.Set("maptype", "satellite")
	q.Set("format", "png")
	q.Set("key", apiKey)
	u.RawQuery = q.Encode()

	slog.Debug("Fetching Google static map", "lat", lat, "lon", lon, "zoom", zoom, "size", q.Get("size"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch static map: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("static maps API error %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read static map body: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode static map: %w", err)
	}

	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return img, nil
	}
	return resizeImage(img, width, height), nil
}

// resizeImage scales to the exact target size with a high quality
// kernel, since roof edges get traced on top of this image.
func resizeImage(img image.Image, width, height int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return out
}
