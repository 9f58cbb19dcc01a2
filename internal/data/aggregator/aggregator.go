package aggregator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"posinsight/internal/core/model"
)

// Metric selects which value a bucket reports.
type Metric int

const (
	MetricCount Metric = iota
	MetricRevenue
)

// ParseMetric parses a metric name from the CLI surface.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(s) {
	case "count", "sales", "":
		return MetricCount, nil
	case "revenue":
		return MetricRevenue, nil
	default:
		return 0, fmt.Errorf("unknown metric %q (expected count or revenue)", s)
	}
}

func (m Metric) String() string {
	if m == MetricRevenue {
		return "revenue"
	}
	return "count"
}

// Bucket accumulates both metrics for one aggregation key. Buckets are
// produced fresh per request and never persisted.
type Bucket struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

func (b *Bucket) add(rec model.TransactionRecord) {
	b.Count += rec.Count
	b.Revenue = b.Revenue.Add(rec.Revenue)
}

// Value returns the bucket's value for the chosen metric, as a decimal so
// counts and revenue share one output shape.
func (b Bucket) Value(m Metric) decimal.Decimal {
	if m == MetricRevenue {
		return b.Revenue
	}
	return decimal.NewFromInt(int64(b.Count))
}

// ByDate groups records by calendar date (2006-01-02 keys).
func ByDate(records []model.TransactionRecord) map[string]Bucket {
	buckets := make(map[string]Bucket)
	for _, rec := range records {
		b := buckets[rec.DateKey()]
		b.add(rec)
		buckets[rec.DateKey()] = b
	}
	return buckets
}

// SortedDateKeys returns the bucket keys of a ByDate result in ascending
// date order.
func SortedDateKeys(buckets map[string]Bucket) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ByHour groups records by hour of day, summed across every date in the
// input. Index = hour 0-23.
func ByHour(records []model.TransactionRecord) [24]Bucket {
	var buckets [24]Bucket
	for _, rec := range records {
		buckets[rec.Hour].add(rec)
	}
	return buckets
}

// ByWeekdayHour groups records into a weekday × hour grid (Sunday = row 0).
func ByWeekdayHour(records []model.TransactionRecord) [7][24]Bucket {
	var grid [7][24]Bucket
	for _, rec := range records {
		grid[int(rec.DayOfWeek)][rec.Hour].add(rec)
	}
	return grid
}

// HourlyAverage returns the per-hour metric averaged over the distinct
// calendar dates present, the "hourly average" mode of series charts.
// With no records every hour reports zero.
func HourlyAverage(records []model.TransactionRecord, metric Metric) [24]decimal.Decimal {
	var out [24]decimal.Decimal

	buckets := ByHour(records)
	days := countActiveDays(records)
	if days == 0 {
		return out
	}

	divisor := decimal.NewFromInt(int64(days))
	for h := range buckets {
		out[h] = buckets[h].Value(metric).Div(divisor)
	}
	return out
}

// ActiveHours lists the hours that have any data in the grid, the columns
// a heatmap should show. An all-empty grid reports every hour so the
// output stays renderable.
func ActiveHours(grid [7][24]Bucket) []int {
	var hours []int
	for h := 0; h < 24; h++ {
		for d := 0; d < 7; d++ {
			if grid[d][h].Count > 0 || grid[d][h].Revenue.IsPositive() {
				hours = append(hours, h)
				break
			}
		}
	}
	if len(hours) == 0 {
		for h := 0; h < 24; h++ {
			hours = append(hours, h)
		}
	}
	return hours
}

// Summary carries the derived statistics for a filtered view.
type Summary struct {
	TotalCount            int             `json:"totalCount"`
	TotalRevenue          decimal.Decimal `json:"totalRevenue"`
	ActiveDays            int             `json:"activeDays"`
	AvgDailyCount         decimal.Decimal `json:"avgDailyCount"`
	AvgDailyRevenue       decimal.Decimal `json:"avgDailyRevenue"`
	RevenuePerTransaction decimal.Decimal `json:"revenuePerTransaction"`
	// PeakHour is -1 when the view holds no records. Ties resolve to the
	// lowest hour.
	PeakHour      int `json:"peakHour"`
	PeakHourCount int `json:"peakHourCount"`
}

// Summarize computes the summary statistics over a filtered view. Every
// division is guarded: an empty view reports zeros and PeakHour -1 rather
// than failing.
func Summarize(records []model.TransactionRecord) Summary {
	s := Summary{
		TotalRevenue:          decimal.Zero,
		AvgDailyCount:         decimal.Zero,
		AvgDailyRevenue:       decimal.Zero,
		RevenuePerTransaction: decimal.Zero,
		PeakHour:              -1,
	}

	for _, rec := range records {
		s.TotalCount += rec.Count
		s.TotalRevenue = s.TotalRevenue.Add(rec.Revenue)
	}
	s.ActiveDays = countActiveDays(records)

	if s.ActiveDays > 0 {
		days := decimal.NewFromInt(int64(s.ActiveDays))
		s.AvgDailyCount = decimal.NewFromInt(int64(s.TotalCount)).Div(days)
		s.AvgDailyRevenue = s.TotalRevenue.Div(days)
	}
	if s.TotalCount > 0 {
		s.RevenuePerTransaction = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TotalCount)))
	}

	hourly := ByHour(records)
	for h := 0; h < 24; h++ {
		// Strictly greater keeps the lowest hour on ties.
		if hourly[h].Count > s.PeakHourCount {
			s.PeakHour = h
			s.PeakHourCount = hourly[h].Count
		}
	}

	return s
}

func countActiveDays(records []model.TransactionRecord) int {
	dates := make(map[string]struct{})
	for _, rec := range records {
		dates[rec.DateKey()] = struct{}{}
	}
	return len(dates)
}
