package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"posinsight/internal/analyzer"
	"posinsight/internal/core/model"
	"posinsight/internal/data/aggregator"
	"posinsight/internal/data/scanner"
	"posinsight/internal/presentation/formatter"
	"posinsight/internal/util"
)

var (
	// Logging related
	debug bool

	// Output related
	outputFormat string
	view         string
	metric       string

	// Filtering
	startDate string
	endDate   string
	weekdays  string

	rootCmd = &cobra.Command{
		Use:   "posinsight [flags] <file|directory>...",
		Short: "Point-of-sale export analyzer",
		Long: `posinsight ingests point-of-sale export files (CSV, XLSX, XLS), detects
their column layout, and aggregates the transactions into daily, hourly and
weekday-by-hour reports.

Examples:
  posinsight september.csv                              # Daily table for one export
  posinsight exports/                                   # Ingest a whole directory
  posinsight --view heatmap --metric revenue exports/   # Revenue heatmap
  posinsight --view stats --output summary exports/     # Statistics cards
  posinsight --start 2025-09-01 --end 2025-09-07 --weekdays weekend exports/
  posinsight --output json exports/ > report.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}
)

const defaultLogFile = "~/.posinsight/logs/app.log"

func init() {
	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	rootCmd.PersistentFlags().StringVar(&view, "view", "daily",
		"Report view (daily, hourly, heatmap, stats)")
	rootCmd.PersistentFlags().StringVarP(&metric, "metric", "m", "count",
		"Metric to aggregate (count, revenue)")

	// Filtering
	rootCmd.PersistentFlags().StringVar(&startDate, "start", "",
		"Start date, inclusive (YYYY-MM-DD; default: first date in the data)")
	rootCmd.PersistentFlags().StringVar(&endDate, "end", "",
		"End date, inclusive (YYYY-MM-DD; default: last date in the data)")
	rootCmd.PersistentFlags().StringVar(&weekdays, "weekdays", "all",
		"Weekday selection (all, weekend, workdays, or a list like sun,sat)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	initRuntime()

	config, err := buildConfig()
	if err != nil {
		return err
	}

	files, err := scanner.Resolve(args)
	if err != nil {
		return err
	}

	return analyzer.New(config).Run(files)
}

func Execute() error {
	return rootCmd.Execute()
}

// initRuntime sets up logging for any subcommand.
func initRuntime() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
}

// buildConfig turns the shared flags into an analyzer configuration.
func buildConfig() (*analyzer.Config, error) {
	parsedView, err := formatter.ParseView(view)
	if err != nil {
		return nil, err
	}

	parsedMetric, err := aggregator.ParseMetric(metric)
	if err != nil {
		return nil, err
	}

	filter, err := buildFilter(startDate, endDate, weekdays)
	if err != nil {
		return nil, err
	}

	return &analyzer.Config{
		OutputFormat: outputFormat,
		View:         parsedView,
		Metric:       parsedMetric,
		Filter:       filter,
	}, nil
}

func buildFilter(start, end, days string) (model.FilterSpec, error) {
	var spec model.FilterSpec
	var err error

	if start != "" {
		if spec.Start, err = parseDate(start); err != nil {
			return spec, err
		}
	}
	if end != "" {
		if spec.End, err = parseDate(end); err != nil {
			return spec, err
		}
	}
	if !spec.Start.IsZero() && !spec.End.IsZero() && spec.End.Before(spec.Start) {
		return spec, fmt.Errorf("end date %s is before start date %s", end, start)
	}

	spec.Weekdays, err = parseWeekdays(days)
	return spec, err
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday, "0": time.Sunday,
	"mon": time.Monday, "monday": time.Monday, "1": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday, "2": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday, "3": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday, "4": time.Thursday,
	"fri": time.Friday, "friday": time.Friday, "5": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday, "6": time.Saturday,
}

// parseWeekdays understands the preset names plus comma-separated day
// tokens. "none" is a legal selection that filters everything out.
func parseWeekdays(s string) (model.WeekdaySet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return model.AllWeekdays(), nil
	case "weekend":
		return model.Weekend(), nil
	case "workdays", "weekdays":
		return model.Workdays(), nil
	case "none":
		return model.NewWeekdaySet(), nil
	}

	var set model.WeekdaySet
	for _, token := range strings.Split(s, ",") {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(token))]
		if !ok {
			return 0, fmt.Errorf("unknown weekday %q", token)
		}
		set |= model.NewWeekdaySet(day)
	}
	return set, nil
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
