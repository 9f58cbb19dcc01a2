package formatter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"posinsight/internal/core/model"
	"posinsight/internal/data/aggregator"
)

// View names a report shape.
const (
	ViewDaily   = "daily"
	ViewHourly  = "hourly"
	ViewHeatmap = "heatmap"
	ViewStats   = "stats"
)

// ParseView validates a view name from the CLI surface.
func ParseView(s string) (string, error) {
	switch s {
	case "", ViewDaily:
		return ViewDaily, nil
	case ViewHourly, ViewHeatmap, ViewStats:
		return s, nil
	default:
		return "", fmt.Errorf("unknown view %q (expected daily, hourly, heatmap or stats)", s)
	}
}

// Report is the fully aggregated output of one analysis run. Every section
// is populated; formatters render the one the View selects.
type Report struct {
	View       string             `json:"view"`
	Metric     aggregator.Metric  `json:"-"`
	MetricName string             `json:"metric"`
	Load       model.LoadResult   `json:"load"`
	Summary aggregator.Summary `json:"summary"`
	Daily   []DailyBucket      `json:"daily,omitempty"`
	Hourly  []HourlyBucket     `json:"hourly,omitempty"`
	Heatmap *HeatmapGrid       `json:"heatmap,omitempty"`
}

type DailyBucket struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type HourlyBucket struct {
	Hour    int             `json:"hour"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	// Average is the per-active-day average of the report metric.
	Average decimal.Decimal `json:"average"`
}

// HeatmapGrid is the weekday × hour matrix (Sunday = row 0) plus the hour
// columns worth rendering.
type HeatmapGrid struct {
	ActiveHours []int                  `json:"activeHours"`
	Cells       [7][24]aggregator.Bucket `json:"cells"`
}

// NewReport aggregates a filtered view into every report section.
func NewReport(view string, metric aggregator.Metric, load model.LoadResult, records []model.TransactionRecord) *Report {
	byDate := aggregator.ByDate(records)
	daily := make([]DailyBucket, 0, len(byDate))
	for _, key := range aggregator.SortedDateKeys(byDate) {
		b := byDate[key]
		daily = append(daily, DailyBucket{Date: key, Count: b.Count, Revenue: b.Revenue})
	}

	byHour := aggregator.ByHour(records)
	avg := aggregator.HourlyAverage(records, metric)
	hourly := make([]HourlyBucket, 0, 24)
	for h := 0; h < 24; h++ {
		hourly = append(hourly, HourlyBucket{
			Hour:    h,
			Count:   byHour[h].Count,
			Revenue: byHour[h].Revenue,
			Average: avg[h],
		})
	}

	grid := aggregator.ByWeekdayHour(records)
	heatmap := &HeatmapGrid{
		ActiveHours: aggregator.ActiveHours(grid),
		Cells:       grid,
	}

	return &Report{
		View:       view,
		Metric:     metric,
		MetricName: metric.String(),
		Load:    load,
		Summary: aggregator.Summarize(records),
		Daily:   daily,
		Hourly:  hourly,
		Heatmap: heatmap,
	}
}

// formatCount renders an integer with thousands separators.
func formatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, digit)
	}

	return string(result)
}

// formatRevenue renders a monetary amount with a currency sign and two
// decimal places.
func formatRevenue(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// compactValue shortens large metric values for dense grids: 10000+ becomes
// "1.0w" (萬), 1000+ becomes "1.0k". Counts below 1000 print as-is.
func compactValue(d decimal.Decimal) string {
	tenThousand := decimal.NewFromInt(10000)
	thousand := decimal.NewFromInt(1000)

	switch {
	case d.GreaterThanOrEqual(tenThousand):
		return d.Div(tenThousand).StringFixed(1) + "w"
	case d.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(1) + "k"
	case d.IsZero():
		return "-"
	default:
		return d.StringFixed(0)
	}
}
