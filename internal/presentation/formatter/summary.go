package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// SummaryFormatter prints the statistics cards plus the load outcome.
type SummaryFormatter struct {
	out io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{out: os.Stdout}
}

func (f *SummaryFormatter) Format(report *Report) error {
	fmt.Fprintln(f.out, strings.Repeat("=", 60))
	fmt.Fprintln(f.out, "Sales Summary Report")
	fmt.Fprintln(f.out, strings.Repeat("=", 60))
	fmt.Fprintln(f.out)

	load := report.Load
	fmt.Fprintf(f.out, "Files: %d loaded, %d failed; %s records\n",
		len(load.FilesSucceeded), len(load.FilesFailed), formatCount(load.RecordsLoaded))
	for _, failure := range load.FilesFailed {
		fmt.Fprintf(f.out, "  failed: %s (%s)\n", failure.Name, failure.Reason)
	}
	if !load.DateRangeMin.IsZero() {
		fmt.Fprintf(f.out, "Data Range: %s to %s\n",
			load.DateRangeMin.Format(time.DateOnly), load.DateRangeMax.Format(time.DateOnly))
	}
	fmt.Fprintln(f.out)

	if err := writeStats(f.out, report); err != nil {
		return err
	}

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, strings.Repeat("=", 60))
	return nil
}

// writeStats prints the six statistics cards. An empty view reports "N/A"
// for the undefined ratios rather than zeros that would read as real data.
func writeStats(out io.Writer, report *Report) error {
	s := report.Summary

	peakHour := "N/A"
	if s.PeakHour >= 0 {
		peakHour = fmt.Sprintf("%02d:00 (%s transactions)", s.PeakHour, formatCount(s.PeakHourCount))
	}
	perTransaction := "N/A"
	avgDailyCount := "N/A"
	avgDailyRevenue := "N/A"
	if s.TotalCount > 0 {
		perTransaction = formatRevenue(s.RevenuePerTransaction)
		avgDailyCount = s.AvgDailyCount.StringFixed(1)
		avgDailyRevenue = formatRevenue(s.AvgDailyRevenue)
	}

	fmt.Fprintf(out, "Total Transactions:       %s\n", formatCount(s.TotalCount))
	fmt.Fprintf(out, "Total Revenue:            %s\n", formatRevenue(s.TotalRevenue))
	fmt.Fprintf(out, "Avg Daily Transactions:   %s\n", avgDailyCount)
	fmt.Fprintf(out, "Avg Daily Revenue:        %s\n", avgDailyRevenue)
	fmt.Fprintf(out, "Revenue per Transaction:  %s\n", perTransaction)
	fmt.Fprintf(out, "Peak Hour:                %s\n", peakHour)

	return nil
}
