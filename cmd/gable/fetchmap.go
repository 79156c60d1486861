package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/Veraticus/gable/internal/cli"
	"github.com/Veraticus/gable/internal/config"
	"github.com/Veraticus/gable/internal/geoportal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func fetchMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch-map <coordinates>",
		Short: "Fetch an aerial image for coordinates",
		Long: `Download an orthophoto centered on "lat,lon" coordinates and write it
to a PNG file. Pass "demo" instead of coordinates to render the
built-in demo scene.`,
		Args: cobra.ExactArgs(1),
		RunE: runFetchMap,
	}

	// Flags
	cmd.Flags().Int("width", geoportal.DefaultWidth, "Image width in pixels")
	cmd.Flags().Int("height", geoportal.DefaultHeight, "Image height in pixels")
	cmd.Flags().Int("zoom", geoportal.DefaultConfig().Zoom, "WMTS zoom level (10-18)")
	cmd.Flags().StringP("output", "o", "map.png", "Output file")
	cmd.Flags().String("source", string(geoportal.SourceGeoportal), "Imagery source (geoportal, google)")

	// Bind to viper
	_ = viper.BindPFlag("fetch.width", cmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("fetch.height", cmd.Flags().Lookup("height"))
	_ = viper.BindPFlag("map.zoom", cmd.Flags().Lookup("zoom"))
	_ = viper.BindPFlag("fetch.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("fetch.source", cmd.Flags().Lookup("source"))

	return cmd
}

func runFetchMap(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	mapCfg, err := config.LoadMapConfig()
	if err != nil {
		return err
	}

	cache, err := initTileCache(ctx)
	if err != nil {
		return err
	}
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	provider, err := geoportal.NewWithConfig(cache, *mapCfg)
	if err != nil {
		return err
	}

	width := viper.GetInt("fetch.width")
	height := viper.GetInt("fetch.height")
	output := viper.GetString("fetch.output")
	source := viper.GetString("fetch.source")

	var img *geoportal.MapImage
	switch coords := strings.TrimSpace(args[0]); coords {
	case "demo", "test":
		img = provider.DemoMap(width, height)
	default:
		img, err = provider.FetchMap(ctx, geoportal.MapRequest{
			Location: coords,
			Width:    width,
			Height:   height,
			Source:   geoportal.Source(source),
		})
		if err != nil {
			return err
		}
	}

	if err := writePNG(output, img.Image); err != nil {
		return err
	}

	bounds := img.Image.Bounds()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %dx%d map centered on (%.4f, %.4f) to %s",
		bounds.Dx(), bounds.Dy(), img.Lat, img.Lon, output)))
	if img.Demo {
		fmt.Println(cli.FormatInfo("Demo scene rendered, no imagery was fetched"))
	}

	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(config.ExpandPath(path))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}

	return f.Close()
}
