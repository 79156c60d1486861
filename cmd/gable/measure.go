package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/gable/internal/cli"
	"github.com/Veraticus/gable/internal/config"
	"github.com/Veraticus/gable/internal/model"
	"github.com/Veraticus/gable/internal/roof"
	"github.com/Veraticus/gable/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func measureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "measure [file]",
		Short: "Measure a roof outline from a JSON document",
		Long: `Run the measurement pipeline over a roof outline document. The input
is the same JSON payload the /api/calculate endpoint accepts; pass "-"
to read it from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: runMeasure,
	}

	// Flags
	cmd.Flags().Bool("json", false, "Print the raw response document instead of a summary")

	// Bind to viper
	_ = viper.BindPFlag("measure.json", cmd.Flags().Lookup("json"))

	return cmd
}

func runMeasure(_ *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	var req server.CalculateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	input, err := req.MeasurementRequest()
	if err != nil {
		return err
	}

	analyzer := roof.NewWithConfig(config.LoadAnalyzerConfig())
	result, err := analyzer.Measure(input)
	if err != nil {
		return err
	}

	if viper.GetBool("measure.json") {
		out, err := json.MarshalIndent(server.NewMeasurementPayload(result), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printMeasurement(result)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func printMeasurement(result *model.MeasurementResult) {
	areas := fmt.Sprintf("Projected area: %.2f m²\nRoof area:      %.2f m²",
		result.Areas.Projected, result.Areas.True)
	fmt.Println(cli.RenderBox("Roof Measurement", areas))

	printEdges("Ridges", result.Edges.Ridges)
	printEdges("Eaves", result.Edges.Eaves)
	printEdges("Rakes", result.Edges.Rakes)
	printEdges("Valleys", result.Edges.Valleys)

	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("pitch %.1f°, scale %.4f m/px, %d points",
		result.Params.AngleDegrees, result.Params.Scale, result.Params.VertexCount)))
}

func printEdges(label string, edges []model.Edge) {
	if len(edges) == 0 {
		return
	}

	fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("%s (%d)", label, len(edges))))
	for _, e := range edges {
		fmt.Printf("  #%d  %.2f m  midpoint (%.1f, %.1f)\n", e.ID, e.RealLength, e.Midpoint.X, e.Midpoint.Y)
	}
}
