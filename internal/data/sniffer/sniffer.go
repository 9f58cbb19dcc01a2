package sniffer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"posinsight/internal/core/model"
	"posinsight/internal/util"
)

// The sniffer never fails: it always returns a best-effort ColumnRoles.
// POS backends export with inconsistent headers (and sometimes none), so
// detection leans on token matching for the date column and on the data
// itself for the revenue column.

var (
	// Header tokens meaning date/time in either expected locale.
	dateHeaderPattern = regexp.MustCompile(`(?i)(時間|日期|date|time)`)
	// Header tokens marking identifier-ish columns that must never be
	// mistaken for revenue (invoice numbers, phone numbers, tax IDs).
	idHeaderPattern = regexp.MustCompile(`(?i)(ID|No|編號|電話|Tel|統一編號|發票)`)
)

const (
	// StatusIssued and StatusVoided are the invoice status tokens; rows
	// carrying the voided token are dropped during normalization.
	StatusIssued = "已開立"
	StatusVoided = "已作廢"

	headerScanRows  = 10
	revenueScanRows = 50
)

// DetectRoles locates the header row and the date, revenue and status
// columns of a decoded table. RevenueColumn and StatusColumn come back -1
// when nothing qualifies; downstream treats that as "revenue unknown" and
// "no status filtering" respectively.
func DetectRoles(table model.RawTable) model.ColumnRoles {
	roles := model.ColumnRoles{
		HeaderRow:     -1,
		DateColumn:    -1,
		RevenueColumn: -1,
		StatusColumn:  -1,
	}

	findHeaderAndDate(table, &roles)
	if roles.HeaderRow == -1 {
		// Best-effort fallback, not an error.
		roles.HeaderRow = 0
		roles.DateColumn = 0
	}

	findRevenueColumn(table, &roles)
	findStatusColumn(table, &roles)

	util.LogDebugf("Detected column roles: header=%d date=%d revenue=%d status=%d",
		roles.HeaderRow, roles.DateColumn, roles.RevenueColumn, roles.StatusColumn)
	return roles
}

// findHeaderAndDate scans the first rows for a cell whose text looks like
// a date/time heading. The first row containing such a cell becomes the
// header row and that cell's column the date column.
func findHeaderAndDate(table model.RawTable, roles *model.ColumnRoles) {
	limit := headerScanRows
	if len(table) < limit {
		limit = len(table)
	}

	for r := 0; r < limit; r++ {
		row := table[r]
		if len(row) == 0 {
			continue
		}
		for i, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if dateHeaderPattern.MatchString(strings.TrimSpace(cell)) {
				roles.HeaderRow = r
				roles.DateColumn = i
			}
		}
		if roles.HeaderRow != -1 {
			return
		}
	}
}

// findRevenueColumn picks the revenue column by content rather than by
// header naming: over a window of data rows, the column with the greatest
// sum of positive monetary values is taken to be the per-transaction
// total. Revenue dwarfs tax lines, service charges and quantities, so the
// biggest total is a robust proxy. Ties keep the lowest column index.
func findRevenueColumn(table model.RawTable, roles *model.ColumnRoles) {
	sums := make(map[int]decimal.Decimal)
	maxCol := 0

	start := roles.HeaderRow + 1
	end := start + revenueScanRows
	if end > len(table) {
		end = len(table)
	}

	for r := start; r < end; r++ {
		row := table[r]
		for col, cell := range row {
			if col == roles.DateColumn {
				continue
			}
			header := strings.TrimSpace(table.Cell(roles.HeaderRow, col))
			if header != "" && idHeaderPattern.MatchString(header) {
				continue
			}

			val, ok := util.ParseMoney(cell)
			if !ok || !val.IsPositive() {
				continue
			}
			sums[col] = sums[col].Add(val)
			if col > maxCol {
				maxCol = col
			}
		}
	}

	best := -1
	bestSum := decimal.Zero
	for col := 0; col <= maxCol; col++ {
		sum, ok := sums[col]
		if !ok {
			continue
		}
		// Strictly greater: earlier columns win ties.
		if sum.GreaterThan(bestSum) {
			best = col
			bestSum = sum
		}
	}

	if best != -1 {
		roles.RevenueColumn = best
		util.LogDebug(fmt.Sprintf("Detected revenue column: index %d (sum %s)", best, bestSum))
	}
}

// findStatusColumn looks for invoice status cells in the scan window.
func findStatusColumn(table model.RawTable, roles *model.ColumnRoles) {
	end := roles.HeaderRow + 1 + revenueScanRows
	if end > len(table) {
		end = len(table)
	}

	for r := roles.HeaderRow; r < end; r++ {
		for col, cell := range table[r] {
			if strings.Contains(cell, StatusIssued) || strings.Contains(cell, StatusVoided) {
				roles.StatusColumn = col
				return
			}
		}
	}
}
