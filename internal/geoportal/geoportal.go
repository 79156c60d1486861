// Package geoportal turns GPS coordinates into aerial imagery suitable
// for tracing roof outlines. The primary source is the Polish national
// orthophoto WMTS service, which is keyed by EPSG:2180 tile coordinates;
// Google static maps serve as a fallback source, and a procedurally
// drawn demo scene covers offline use.
package geoportal

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/Veraticus/gable/internal/common"
	"github.com/Veraticus/gable/internal/storage"
)

// Source selects which imagery backend serves a request.
type Source string

const (
	SourceGeoportal Source = "geoportal"
	SourceGoogle    Source = "google"
)

// Config holds the map provider settings.
type Config struct {
	WMTSBaseURL   string
	GoogleBaseURL string
	GoogleAPIKey  string
	Zoom          int
	GoogleZoom    int
	TileTimeout   time.Duration
}

// DefaultConfig returns settings suitable for production use.
func DefaultConfig() Config {
	return Config{
		WMTSBaseURL:   GeoportalWMTSURL,
		GoogleBaseURL: GoogleStaticMapsURL,
		Zoom:          14,
		GoogleZoom:    19,
		TileTimeout:   10 * time.Second,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if _, err := Resolution(c.Zoom); err != nil {
		return err
	}
	if c.GoogleZoom < 0 || c.GoogleZoom > 22 {
		return fmt.Errorf("%w: google zoom %d out of range", common.ErrInvalidConfig, c.GoogleZoom)
	}
	if c.WMTSBaseURL == "" {
		return fmt.Errorf("%w: WMTS base URL", common.ErrMissingConfig)
	}
	return nil
}

// MapRequest describes one map fetch.
type MapRequest struct {
	// Location is free text holding "lat,lon".
	Location string
	Width    int
	Height   int
	Source   Source
	// GoogleAPIKey overrides the configured key for this request.
	GoogleAPIKey string
}

// MapImage is a fetched map with the coordinates it is centered on.
type MapImage struct {
	Image image.Image
	Lon   float64
	Lat   float64
	Demo  bool
}

// Provider fetches maps from whichever source a request names.
type Provider struct {
	config Config
	proj   *Projector
	wmts   *Client
	google *GoogleClient
}

// New creates a provider with default settings. The cache may be nil.
func New(cache *storage.TileCache) (*Provider, error) {
	return NewWithConfig(cache, DefaultConfig())
}

// NewWithConfig creates a provider with custom settings.
func NewWithConfig(cache *storage.TileCache, config Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	projector, err := NewProjector()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize projections: %w", err)
	}
	return &Provider{
		config: config,
		proj:   projector,
		wmts:   NewClient(config.WMTSBaseURL, config.TileTimeout, cache),
		google: NewGoogleClient(config.GoogleBaseURL, config.TileTimeout),
	}, nil
}

// FetchMap parses the request location and fetches imagery centered on
// it from the selected source.
func (p *Provider) FetchMap(ctx context.Context, req MapRequest) (*MapImage, error) {
	width, height := req.Width, req.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	lat, lon, err := ParseCoordinates(req.Location)
	if err != nil {
		return nil, err
	}

	var img image.Image
	switch req.Source {
	case SourceGeoportal, "":
		x, y, perr := p.proj.ToEPSG2180(lon, lat)
		if perr != nil {
			return nil, perr
		}
		img, err = p.wmts.FetchArea(ctx, x, y, width, height, p.config.Zoom)
	case SourceGoogle:
		key := req.GoogleAPIKey
		if key == "" {
			key = p.config.GoogleAPIKey
		}
		img, err = p.google.FetchMap(ctx, lat, lon, width, height, p.config.GoogleZoom, key)
	default:
		return nil, fmt.Errorf("unknown map source %q", req.Source)
	}
	if err != nil {
		return nil, err
	}

	return &MapImage{Image: img, Lon: lon, Lat: lat}, nil
}

// DemoMap returns the built-in sample scene at the requested size.
func (p *Provider) DemoMap(width, height int) *MapImage {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &MapImage{
		Image: DemoImage(width, height),
		Lon:   DemoLon,
		Lat:   DemoLat,
		Demo:  true,
	}
}
