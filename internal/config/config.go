// Package config loads component settings from Viper and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/gable/internal/common"
	"github.com/Veraticus/gable/internal/geoportal"
	"github.com/Veraticus/gable/internal/roof"
	"github.com/Veraticus/gable/internal/server"
)

// DefaultCachePath is where the tile cache database lives unless
// overridden.
const DefaultCachePath = "$HOME/.local/share/gable/tiles.db"

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// LoadMapConfig assembles the map provider settings. It follows this
// precedence:
// 1. Viper configuration (from config file or GABLE_ env vars)
// 2. The GOOGLE_MAPS_API_KEY environment variable for the API key
// 3. Default values
func LoadMapConfig() (*geoportal.Config, error) {
	config := geoportal.DefaultConfig()

	if v := viper.GetString("map.wmts_url"); v != "" {
		config.WMTSBaseURL = v
	}
	if v := viper.GetString("map.google_url"); v != "" {
		config.GoogleBaseURL = v
	}
	if v := viper.GetString("map.google_api_key"); v != "" {
		config.GoogleAPIKey = v
	}
	if viper.IsSet("map.zoom") {
		config.Zoom = viper.GetInt("map.zoom")
	}
	if viper.IsSet("map.google_zoom") {
		config.GoogleZoom = viper.GetInt("map.google_zoom")
	}
	if v := viper.GetDuration("map.tile_timeout"); v > 0 {
		config.TileTimeout = v
	}

	if config.GoogleAPIKey == "" {
		config.GoogleAPIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadAnalyzerConfig reads the edge classifier settings.
func LoadAnalyzerConfig() roof.Config {
	config := roof.DefaultConfig()
	if viper.IsSet("classifier.horizontal_threshold_deg") {
		config.HorizontalThresholdDeg = viper.GetFloat64("classifier.horizontal_threshold_deg")
	}
	return config
}

// LoadServerConfig reads the HTTP server settings. The PORT environment
// variable is honored when the config file does not pin a port.
func LoadServerConfig() (*server.Config, error) {
	config := server.DefaultConfig()

	if v := viper.GetString("server.host"); v != "" {
		config.Host = v
	}
	switch {
	case viper.IsSet("server.port"):
		config.Port = viper.GetInt("server.port")
	case os.Getenv("PORT") != "":
		port, err := strconv.Atoi(os.Getenv("PORT"))
		if err != nil {
			return nil, fmt.Errorf("%w: PORT=%q is not a number", common.ErrInvalidConfig, os.Getenv("PORT"))
		}
		config.Port = port
	}
	if v := viper.GetDuration("server.shutdown_timeout"); v > 0 {
		config.ShutdownTimeout = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// CacheConfig holds tile cache settings.
type CacheConfig struct {
	Path     string
	MaxAge   time.Duration
	Disabled bool
}

// LoadCacheConfig reads tile cache settings. Orthophotos change rarely,
// so cached tiles stay fresh for a month by default.
func LoadCacheConfig() CacheConfig {
	config := CacheConfig{
		Path:   ExpandPath(DefaultCachePath),
		MaxAge: 30 * 24 * time.Hour,
	}
	if v := viper.GetString("cache.path"); v != "" {
		config.Path = ExpandPath(v)
	}
	if v := viper.GetDuration("cache.max_age"); v > 0 {
		config.MaxAge = v
	}
	if viper.GetBool("cache.disabled") {
		config.Disabled = true
	}
	return config
}
