package analyzer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"posinsight/internal/core/model"
	"posinsight/internal/data/aggregator"
	"posinsight/internal/data/filter"
)

// SeriesMode selects how compared series are laid out against each other.
type SeriesMode string

const (
	// ModeAbsolute plots each series on the shared calendar axis.
	ModeAbsolute SeriesMode = "absolute"
	// ModeRelative aligns every series to its own first day, so ranges of
	// different calendar periods overlay.
	ModeRelative SeriesMode = "relative"
	// ModeHourly plots each series as per-hour daily averages.
	ModeHourly SeriesMode = "hourly"
)

// ParseSeriesMode parses a mode name from the CLI surface.
func ParseSeriesMode(s string) (SeriesMode, error) {
	switch strings.ToLower(s) {
	case "", string(ModeAbsolute):
		return ModeAbsolute, nil
	case string(ModeRelative):
		return ModeRelative, nil
	case string(ModeHourly):
		return ModeHourly, nil
	default:
		return "", fmt.Errorf("unknown series mode %q (expected absolute, relative or hourly)", s)
	}
}

// SeriesPoint is one plotted value of a compared series.
type SeriesPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// SeriesResult is the evaluated form of one SeriesSpec.
type SeriesResult struct {
	Name    string             `json:"name"`
	Color   string             `json:"color,omitempty"`
	Points  []SeriesPoint      `json:"points"`
	Summary aggregator.Summary `json:"summary"`
}

// EvaluateSeries evaluates every spec independently against one snapshot.
// Specs never interact: each applies its own filter and aggregates its own
// view, so overlapping or disjoint ranges are both fine.
func EvaluateSeries(snapshot []model.TransactionRecord, specs []model.SeriesSpec, mode SeriesMode, metric aggregator.Metric) []SeriesResult {
	results := make([]SeriesResult, 0, len(specs))
	for _, spec := range specs {
		view := filter.Apply(snapshot, spec.Filter)
		results = append(results, SeriesResult{
			Name:    spec.Name,
			Color:   spec.Color,
			Points:  seriesPoints(view, mode, metric),
			Summary: aggregator.Summarize(view),
		})
	}
	return results
}

func seriesPoints(view []model.TransactionRecord, mode SeriesMode, metric aggregator.Metric) []SeriesPoint {
	if mode == ModeHourly {
		avg := aggregator.HourlyAverage(view, metric)
		points := make([]SeriesPoint, 0, 24)
		for h := 0; h < 24; h++ {
			points = append(points, SeriesPoint{
				Label: fmt.Sprintf("%02d:00", h),
				Value: avg[h],
			})
		}
		return points
	}

	buckets := aggregator.ByDate(view)
	keys := aggregator.SortedDateKeys(buckets)
	points := make([]SeriesPoint, 0, len(keys))
	for i, key := range keys {
		label := key
		if mode == ModeRelative {
			label = fmt.Sprintf("Day %d", i+1)
		}
		points = append(points, SeriesPoint{
			Label: label,
			Value: buckets[key].Value(metric),
		})
	}
	return points
}
