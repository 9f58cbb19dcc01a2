package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Row order matches time.Weekday: Sunday first.
var weekdayLabels = [7]string{"週日", "週一", "週二", "週三", "週四", "週五", "週六"}

// heatmapRenderer draws the weekday × hour grid. Only hours with data get a
// column; large revenue values are compacted so columns stay narrow. CJK
// labels occupy two terminal cells per rune, so alignment goes through
// runewidth rather than len.
type heatmapRenderer struct {
	out io.Writer
}

func newHeatmapRenderer(out io.Writer) *heatmapRenderer {
	return &heatmapRenderer{out: out}
}

func (r *heatmapRenderer) render(report *Report) error {
	grid := report.Heatmap
	if grid == nil {
		return fmt.Errorf("report carries no heatmap section")
	}

	labelWidth := runewidth.StringWidth(weekdayLabels[0])

	cells := make([][7]string, len(grid.ActiveHours))
	colWidths := make([]int, len(grid.ActiveHours))
	for i, h := range grid.ActiveHours {
		colWidths[i] = runewidth.StringWidth(fmt.Sprintf("%02d", h))
		for d := 0; d < 7; d++ {
			v := compactValue(grid.Cells[d][h].Value(report.Metric))
			cells[i][d] = v
			if w := runewidth.StringWidth(v); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	// Header row: hour numbers.
	fmt.Fprint(r.out, strings.Repeat(" ", labelWidth))
	for i, h := range grid.ActiveHours {
		fmt.Fprintf(r.out, "  %s", pad(fmt.Sprintf("%02d", h), colWidths[i]))
	}
	fmt.Fprintln(r.out)

	for d := 0; d < 7; d++ {
		fmt.Fprint(r.out, pad(weekdayLabels[d], labelWidth))
		for i := range grid.ActiveHours {
			fmt.Fprintf(r.out, "  %s", pad(cells[i][d], colWidths[i]))
		}
		fmt.Fprintln(r.out)
	}

	return nil
}

// pad right-pads s to the given display width.
func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
