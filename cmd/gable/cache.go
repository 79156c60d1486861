package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/gable/internal/cli"
	"github.com/spf13/cobra"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the tile cache",
		Long:  `Inspect and prune the local SQLite cache of downloaded map tiles.`,
	}

	cmd.AddCommand(cacheStatsCmd())
	cmd.AddCommand(cachePruneCmd())

	return cmd
}

func cacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show tile cache statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cache, err := initTileCache(ctx)
			if err != nil {
				return err
			}
			if cache == nil {
				fmt.Println(cli.InfoStyle.Render("Tile cache is disabled."))
				return nil
			}
			defer func() { _ = cache.Close() }()

			count, size, err := cache.Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to read cache stats: %w", err)
			}

			content := fmt.Sprintf("Tiles: %d\nSize:  %s", count, formatBytes(size))
			fmt.Println(cli.RenderBox("Tile Cache", content))

			return nil
		},
	}
}

func cachePruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete cached tiles older than a cutoff",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			olderThan, err := cmd.Flags().GetDuration("older-than")
			if err != nil {
				return err
			}

			cache, err := initTileCache(ctx)
			if err != nil {
				return err
			}
			if cache == nil {
				fmt.Println(cli.InfoStyle.Render("Tile cache is disabled."))
				return nil
			}
			defer func() { _ = cache.Close() }()

			removed, err := cache.Prune(ctx, olderThan)
			if err != nil {
				return fmt.Errorf("failed to prune cache: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed %d cached tiles", removed)))

			return nil
		},
	}

	cmd.Flags().Duration("older-than", 30*24*time.Hour, "Remove tiles older than this")

	return cmd
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
