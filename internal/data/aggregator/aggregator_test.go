package aggregator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posinsight/internal/core/model"
)

func record(day, hour int, revenue int64) model.TransactionRecord {
	return model.NewTransactionRecord(
		time.Date(2025, 9, day, hour, 15, 0, 0, time.UTC),
		decimal.NewFromInt(revenue),
	)
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input       string
		expected    Metric
		expectError bool
	}{
		{input: "count", expected: MetricCount},
		{input: "sales", expected: MetricCount},
		{input: "", expected: MetricCount},
		{input: "revenue", expected: MetricRevenue},
		{input: "REVENUE", expected: MetricRevenue},
		{input: "tokens", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMetric(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestByDate(t *testing.T) {
	records := []model.TransactionRecord{
		record(1, 10, 100),
		record(1, 14, 50),
		record(2, 9, 200),
	}

	buckets := ByDate(records)
	require.Len(t, buckets, 2)

	day1 := buckets["2025-09-01"]
	assert.Equal(t, 2, day1.Count)
	assert.True(t, day1.Revenue.Equal(decimal.NewFromInt(150)))

	day2 := buckets["2025-09-02"]
	assert.Equal(t, 1, day2.Count)
	assert.True(t, day2.Revenue.Equal(decimal.NewFromInt(200)))

	assert.Equal(t, []string{"2025-09-01", "2025-09-02"}, SortedDateKeys(buckets))
}

func TestByHourSumsAcrossDates(t *testing.T) {
	// Same hour on different days accumulates into one bucket: the hourly
	// view is a cross-date sum, not a per-day average.
	records := []model.TransactionRecord{
		record(1, 12, 100),
		record(2, 12, 80),
		record(3, 18, 40),
	}

	buckets := ByHour(records)
	assert.Equal(t, 2, buckets[12].Count)
	assert.True(t, buckets[12].Revenue.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, 1, buckets[18].Count)
	assert.Equal(t, 0, buckets[0].Count)
}

func TestByWeekdayHour(t *testing.T) {
	// 2025-09-01 is a Monday, 2025-09-07 a Sunday.
	records := []model.TransactionRecord{
		record(1, 12, 100),
		record(7, 20, 60),
	}

	grid := ByWeekdayHour(records)
	assert.Equal(t, 1, grid[int(time.Monday)][12].Count)
	assert.Equal(t, 1, grid[int(time.Sunday)][20].Count)
	assert.Equal(t, 0, grid[int(time.Tuesday)][12].Count)
}

func TestHourlyAverage(t *testing.T) {
	// Two active days; hour 12 sums to 4 transactions -> average 2.
	records := []model.TransactionRecord{
		record(1, 12, 100),
		record(1, 12, 100),
		record(2, 12, 100),
		record(2, 12, 100),
	}

	avg := HourlyAverage(records, MetricCount)
	assert.True(t, avg[12].Equal(decimal.NewFromInt(2)))
	assert.True(t, avg[0].Equal(decimal.Zero))
}

func TestHourlyAverageEmpty(t *testing.T) {
	avg := HourlyAverage(nil, MetricRevenue)
	for h := range avg {
		assert.True(t, avg[h].Equal(decimal.Zero))
	}
}

func TestActiveHours(t *testing.T) {
	t.Run("only hours with data", func(t *testing.T) {
		grid := ByWeekdayHour([]model.TransactionRecord{
			record(1, 9, 100),
			record(7, 18, 50),
		})
		assert.Equal(t, []int{9, 18}, ActiveHours(grid))
	})

	t.Run("empty grid reports all hours", func(t *testing.T) {
		var grid [7][24]Bucket
		assert.Len(t, ActiveHours(grid), 24)
	})
}

func TestSummarize(t *testing.T) {
	records := []model.TransactionRecord{
		record(1, 12, 100),
		record(1, 12, 50),
		record(2, 18, 150),
	}

	s := Summarize(records)
	assert.Equal(t, 3, s.TotalCount)
	assert.True(t, s.TotalRevenue.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 2, s.ActiveDays)
	assert.True(t, s.AvgDailyRevenue.Equal(decimal.NewFromInt(150)))
	assert.True(t, s.RevenuePerTransaction.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 12, s.PeakHour)
	assert.Equal(t, 2, s.PeakHourCount)
}

func TestSummarizePeakHourTieBreak(t *testing.T) {
	// Hours 9 and 15 both hold two transactions; the lower hour wins.
	records := []model.TransactionRecord{
		record(1, 15, 10),
		record(1, 15, 10),
		record(2, 9, 10),
		record(3, 9, 10),
	}

	s := Summarize(records)
	assert.Equal(t, 9, s.PeakHour)
	assert.Equal(t, 2, s.PeakHourCount)
}

func TestSummarizeEmptyView(t *testing.T) {
	// Division guards: an empty view reports zeros, never panics.
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalCount)
	assert.True(t, s.TotalRevenue.Equal(decimal.Zero))
	assert.Equal(t, 0, s.ActiveDays)
	assert.True(t, s.AvgDailyCount.Equal(decimal.Zero))
	assert.True(t, s.RevenuePerTransaction.Equal(decimal.Zero))
	assert.Equal(t, -1, s.PeakHour)
}

func BenchmarkSummarize(b *testing.B) {
	records := make([]model.TransactionRecord, 0, 10000)
	for i := 0; i < 10000; i++ {
		records = append(records, record(1+i%28, i%24, int64(50+i%500)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Summarize(records)
	}
}
