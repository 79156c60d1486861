package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/gable/internal/cli"
	"github.com/Veraticus/gable/internal/config"
	"github.com/Veraticus/gable/internal/geoportal"
	"github.com/Veraticus/gable/internal/roof"
	"github.com/Veraticus/gable/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the roof measurement HTTP API",
		Long: `Start the HTTP server backing the drawing frontend. It exposes the
measurement endpoint, the map fetching endpoint, and a health check.`,
		RunE: runServe,
	}

	// Flags
	cmd.Flags().String("host", "", "Interface to listen on")
	cmd.Flags().IntP("port", "p", 0, "Port to listen on")

	// Bind to viper
	_ = viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}

	mapCfg, err := config.LoadMapConfig()
	if err != nil {
		return err
	}

	cache, err := initTileCache(ctx)
	if err != nil {
		return err
	}
	if cache != nil {
		defer func() {
			if closeErr := cache.Close(); closeErr != nil {
				slog.Warn("failed to close tile cache", "error", closeErr)
			}
		}()
	}

	maps, err := geoportal.NewWithConfig(cache, *mapCfg)
	if err != nil {
		return err
	}

	analyzer := roof.NewWithConfig(config.LoadAnalyzerConfig())

	fmt.Println(cli.FormatTitle("Roof measurement service"))
	fmt.Println(cli.FormatInfo(fmt.Sprintf("Listening on http://%s:%d", serverCfg.Host, serverCfg.Port)))

	return server.New(analyzer, maps, *serverCfg).Start(ctx)
}
