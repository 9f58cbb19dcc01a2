package commands

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"posinsight/internal/analyzer"
	"posinsight/internal/core/model"
	"posinsight/internal/data/scanner"
)

var (
	seriesFile  string
	compareMode string

	compareCmd = &cobra.Command{
		Use:   "compare --series <spec.json> <file|directory>...",
		Short: "Compare several date ranges against one dataset",
		Long: `compare evaluates multiple named series, each with its own date range and
weekday selection, against the same loaded dataset.

The series file is a JSON array:

  [
    {"name": "week 1", "color": "#3b82f6", "start": "2025-09-01", "end": "2025-09-07"},
    {"name": "week 2", "color": "#f59e0b", "start": "2025-09-08", "end": "2025-09-14", "weekdays": "workdays"}
  ]

Modes: absolute (shared calendar axis), relative (each series aligned to its
own first day), hourly (per-hour daily averages).`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCompare,
	}
)

func init() {
	compareCmd.Flags().StringVar(&seriesFile, "series", "",
		"Path to the JSON series specification (required)")
	compareCmd.Flags().StringVar(&compareMode, "mode", "absolute",
		"Comparison mode (absolute, relative, hourly)")
	compareCmd.MarkFlagRequired("series")
	rootCmd.AddCommand(compareCmd)
}

// seriesFileEntry is the wire form of one series in the --series file.
type seriesFileEntry struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Weekdays string `json:"weekdays"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	initRuntime()

	config, err := buildConfig()
	if err != nil {
		return err
	}

	mode, err := analyzer.ParseSeriesMode(compareMode)
	if err != nil {
		return err
	}

	specs, err := loadSeriesSpecs(seriesFile)
	if err != nil {
		return err
	}

	files, err := scanner.Resolve(args)
	if err != nil {
		return err
	}

	a := analyzer.New(config)
	if _, err := a.Ingest(files); err != nil {
		return err
	}

	results := analyzer.EvaluateSeries(a.Snapshot(), specs, mode, config.Metric)
	return outputSeries(results)
}

func loadSeriesSpecs(path string) ([]model.SeriesSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read series file: %w", err)
	}

	var entries []seriesFileEntry
	if err := sonic.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode series file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("series file %s defines no series", path)
	}

	return toSeriesSpecs(entries)
}

func toSeriesSpecs(entries []seriesFileEntry) ([]model.SeriesSpec, error) {
	specs := make([]model.SeriesSpec, 0, len(entries))
	for i, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("series %d has no name", i+1)
		}
		if entry.Start == "" || entry.End == "" {
			return nil, fmt.Errorf("series %q needs both start and end dates", entry.Name)
		}

		filter, err := buildFilter(entry.Start, entry.End, entry.Weekdays)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", entry.Name, err)
		}

		specs = append(specs, model.SeriesSpec{
			Name:   entry.Name,
			Color:  entry.Color,
			Filter: filter,
		})
	}
	return specs, nil
}

func outputSeries(results []analyzer.SeriesResult) error {
	if outputFormat == "json" {
		data, err := sonic.ConfigDefault.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode series results: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for i, result := range results {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%d transactions)\n", result.Name, result.Summary.TotalCount)
		for _, point := range result.Points {
			fmt.Printf("  %-12s %s\n", point.Label, point.Value.StringFixed(2))
		}
	}
	return nil
}
