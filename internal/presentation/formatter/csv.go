package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

type CSVFormatter struct {
	out io.Writer
}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{out: os.Stdout}
}

// Format writes the section the report's view selects as CSV rows. The
// heatmap flattens to one row per weekday-hour cell with data.
func (f *CSVFormatter) Format(report *Report) error {
	w := csv.NewWriter(f.out)
	defer w.Flush()

	switch report.View {
	case ViewHourly:
		if err := w.Write([]string{"hour", "count", "revenue", "avg_per_day"}); err != nil {
			return err
		}
		for _, b := range report.Hourly {
			record := []string{
				fmt.Sprintf("%02d", b.Hour),
				fmt.Sprintf("%d", b.Count),
				b.Revenue.StringFixed(2),
				b.Average.StringFixed(2),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}

	case ViewHeatmap:
		if err := w.Write([]string{"weekday", "hour", "count", "revenue"}); err != nil {
			return err
		}
		for d := 0; d < 7; d++ {
			for h := 0; h < 24; h++ {
				cell := report.Heatmap.Cells[d][h]
				if cell.Count == 0 {
					continue
				}
				record := []string{
					fmt.Sprintf("%d", d),
					fmt.Sprintf("%02d", h),
					fmt.Sprintf("%d", cell.Count),
					cell.Revenue.StringFixed(2),
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
		}

	default:
		if err := w.Write([]string{"date", "count", "revenue"}); err != nil {
			return err
		}
		for _, b := range report.Daily {
			record := []string{
				b.Date,
				fmt.Sprintf("%d", b.Count),
				b.Revenue.StringFixed(2),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	return w.Error()
}
