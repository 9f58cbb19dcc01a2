package analyzer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"posinsight/internal/core/model"
	"posinsight/internal/data/aggregator"
	"posinsight/internal/data/decoder"
	"posinsight/internal/data/filter"
	"posinsight/internal/data/normalizer"
	"posinsight/internal/data/sniffer"
	"posinsight/internal/data/store"
	"posinsight/internal/presentation/formatter"
	"posinsight/internal/util"
)

type Config struct {
	OutputFormat string // table, json, csv, summary
	View         string // daily, hourly, heatmap, stats
	Metric       aggregator.Metric
	Filter       model.FilterSpec
}

type Analyzer struct {
	config *Config
	store  *store.Store
}

// ErrNoValidRows marks a file that decoded fine but yielded zero
// transaction records.
var ErrNoValidRows = errors.New("no valid rows")

// EmptyBatchError reports a batch in which every file failed. Partial
// batches are not errors; the per-file failures ride in the LoadResult.
type EmptyBatchError struct {
	Failures []model.FileFailure
}

func (e *EmptyBatchError) Error() string {
	return fmt.Sprintf("no file in the batch produced records (%d failed)", len(e.Failures))
}

func New(config *Config) *Analyzer {
	return &Analyzer{
		config: config,
		store:  store.New(),
	}
}

// Ingest loads a batch of export files into the dataset store. Files are
// processed sequentially; one bad file never aborts its siblings. The
// returned LoadResult always describes the batch, even on error. The only
// error is an EmptyBatchError when no file contributed records.
func (a *Analyzer) Ingest(files []string) (model.LoadResult, error) {
	start := time.Now()
	var (
		result  model.LoadResult
		records []model.TransactionRecord
	)

	for _, file := range files {
		fileRecords, err := a.ingestFile(file)
		if err != nil {
			util.LogWarn(fmt.Sprintf("Skipping file %s: %v", file, err))
			result.FilesFailed = append(result.FilesFailed, model.FileFailure{
				Name:   filepath.Base(file),
				Reason: err.Error(),
			})
			continue
		}
		result.FilesSucceeded = append(result.FilesSucceeded, filepath.Base(file))
		records = append(records, fileRecords...)
	}

	if len(result.FilesSucceeded) == 0 {
		return result, &EmptyBatchError{Failures: result.FilesFailed}
	}

	a.store.Load(records)
	result.RecordsLoaded = a.store.Len()
	if min, max, ok := a.store.DateRange(); ok {
		result.DateRangeMin = util.DateOnly(min)
		result.DateRangeMax = util.DateOnly(max)
	}

	util.LogDebug(fmt.Sprintf("Batch load completed: duration %v, %d records from %d files (%d failed)",
		time.Since(start), result.RecordsLoaded, len(result.FilesSucceeded), len(result.FilesFailed)))

	return result, nil
}

// ingestFile runs one file through the decode, sniff and normalize stages.
func (a *Analyzer) ingestFile(path string) ([]model.TransactionRecord, error) {
	format, err := decoder.DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	table, err := decoder.Decode(data, format)
	if err != nil {
		return nil, err
	}

	roles := sniffer.DetectRoles(table)
	util.LogDebug(fmt.Sprintf("Detected columns in %s: header=%d date=%d revenue=%d status=%d",
		filepath.Base(path), roles.HeaderRow, roles.DateColumn, roles.RevenueColumn, roles.StatusColumn))

	records, tally := normalizer.Normalize(table, roles)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w (%d rows discarded)", ErrNoValidRows, tally.Total())
	}

	return records, nil
}

// Snapshot exposes the loaded dataset for callers that aggregate outside
// the configured run, such as series comparison.
func (a *Analyzer) Snapshot() []model.TransactionRecord {
	return a.store.Snapshot()
}

// Report filters the loaded snapshot with the configured spec and
// aggregates it into a report.
func (a *Analyzer) Report(load model.LoadResult) *formatter.Report {
	spec := a.resolveFilter(load)
	filtered := filter.Apply(a.store.Snapshot(), spec)
	util.LogDebug(fmt.Sprintf("Filter kept %d of %d records", len(filtered), a.store.Len()))

	return formatter.NewReport(a.config.View, a.config.Metric, load, filtered)
}

// resolveFilter fills unset filter bounds from the loaded data's date
// range, mirroring date pickers that clamp to the data.
func (a *Analyzer) resolveFilter(load model.LoadResult) model.FilterSpec {
	spec := a.config.Filter
	if spec.Start.IsZero() {
		spec.Start = load.DateRangeMin
	}
	if spec.End.IsZero() {
		spec.End = load.DateRangeMax
	}
	return spec
}

// Run executes the full pipeline: ingest the files, aggregate the filtered
// view and print it in the configured output format.
func (a *Analyzer) Run(files []string) error {
	startTime := time.Now()
	util.LogInfo(fmt.Sprintf("Starting analysis of %d export files...", len(files)))

	if len(files) == 0 {
		return fmt.Errorf("no export files found")
	}

	load, err := a.Ingest(files)
	if err != nil {
		return err
	}

	report := a.Report(load)

	outputStart := time.Now()
	err = a.formatAndOutput(report)
	util.LogDebug(fmt.Sprintf("Output duration: %v, total duration: %v",
		time.Since(outputStart), time.Since(startTime)))

	return err
}

func (a *Analyzer) formatAndOutput(report *formatter.Report) error {
	switch a.config.OutputFormat {
	case "json":
		return formatter.NewJSONFormatter().Format(report)
	case "csv":
		return formatter.NewCSVFormatter().Format(report)
	case "summary":
		return formatter.NewSummaryFormatter().Format(report)
	default:
		return formatter.NewTableFormatter().Format(report)
	}
}
