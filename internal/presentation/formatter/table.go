package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// borderSet holds the characters used to draw table frames.
type borderSet struct {
	horizontal string
	vertical   string
	corners    map[string][3]string // borderType -> left, middle, right
}

var boxBorders = borderSet{
	horizontal: "─",
	vertical:   "│",
	corners: map[string][3]string{
		"top":    {"┌", "┬", "┐"},
		"middle": {"├", "┼", "┤"},
		"bottom": {"└", "┴", "┘"},
	},
}

var asciiBorders = borderSet{
	horizontal: "-",
	vertical:   "|",
	corners: map[string][3]string{
		"top":    {"+", "+", "+"},
		"middle": {"+", "+", "+"},
		"bottom": {"+", "+", "+"},
	},
}

// TableFormatter renders a report as an aligned text table. Box-drawing
// borders are used on a real terminal; piped output falls back to ASCII so
// downstream tools see plain bytes.
type TableFormatter struct {
	out     io.Writer
	borders borderSet
}

func NewTableFormatter() *TableFormatter {
	borders := asciiBorders
	if term.IsTerminal(int(os.Stdout.Fd())) {
		borders = boxBorders
	}
	return &TableFormatter{out: os.Stdout, borders: borders}
}

func (f *TableFormatter) Format(report *Report) error {
	switch report.View {
	case ViewHourly:
		return f.formatHourly(report)
	case ViewHeatmap:
		return newHeatmapRenderer(f.out).render(report)
	case ViewStats:
		return writeStats(f.out, report)
	default:
		return f.formatDaily(report)
	}
}

func (f *TableFormatter) formatDaily(report *Report) error {
	headers := []string{"Date", "Transactions", "Revenue"}
	rows := make([][]string, 0, len(report.Daily)+1)
	for _, b := range report.Daily {
		rows = append(rows, []string{b.Date, formatCount(b.Count), formatRevenue(b.Revenue)})
	}
	rows = append(rows, []string{"Total",
		formatCount(report.Summary.TotalCount),
		formatRevenue(report.Summary.TotalRevenue)})

	return f.printTable(headers, rows, []bool{false, true, true})
}

func (f *TableFormatter) formatHourly(report *Report) error {
	headers := []string{"Hour", "Transactions", "Revenue", "Avg/Day"}
	var rows [][]string
	for _, b := range report.Hourly {
		if b.Count == 0 {
			continue
		}
		rows = append(rows, []string{
			fmt.Sprintf("%02d:00", b.Hour),
			formatCount(b.Count),
			formatRevenue(b.Revenue),
			b.Average.StringFixed(2),
		})
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(f.out, "No data in the selected range")
		return err
	}

	return f.printTable(headers, rows, []bool{false, true, true, true})
}

// printTable writes a bordered table; rightAlign marks numeric columns.
// The final row is separated from the body by a middle border.
func (f *TableFormatter) printTable(headers []string, rows [][]string, rightAlign []bool) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	f.printBorder(widths, "top")
	f.printRow(headers, widths, rightAlign)
	f.printBorder(widths, "middle")
	for i, row := range rows {
		if i == len(rows)-1 && len(rows) > 1 {
			f.printBorder(widths, "middle")
		}
		f.printRow(row, widths, rightAlign)
	}
	f.printBorder(widths, "bottom")
	return nil
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	c := f.borders.corners[borderType]
	fmt.Fprint(f.out, c[0])
	for i, width := range widths {
		fmt.Fprint(f.out, strings.Repeat(f.borders.horizontal, width+2))
		if i < len(widths)-1 {
			fmt.Fprint(f.out, c[1])
		}
	}
	fmt.Fprintln(f.out, c[2])
}

func (f *TableFormatter) printRow(values []string, widths []int, rightAlign []bool) {
	fmt.Fprint(f.out, f.borders.vertical)
	for i, value := range values {
		if rightAlign[i] {
			fmt.Fprintf(f.out, " %*s %s", widths[i], value, f.borders.vertical)
		} else {
			fmt.Fprintf(f.out, " %-*s %s", widths[i], value, f.borders.vertical)
		}
	}
	fmt.Fprintln(f.out)
}
