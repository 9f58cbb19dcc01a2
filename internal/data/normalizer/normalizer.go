package normalizer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"posinsight/internal/core/model"
	"posinsight/internal/util"
)

// DiscardTally counts rows skipped during normalization, by reason.
// Discards are expected noise in real-world exports, never errors.
type DiscardTally struct {
	EmptyRows int
	BadDates  int
	Voided    int
}

// Total returns the number of discarded rows.
func (t DiscardTally) Total() int {
	return t.EmptyRows + t.BadDates + t.Voided
}

// Normalize converts the data rows of a table into transaction records
// using the detected column roles. Rows that cannot produce a valid
// timestamp are skipped and tallied. Records come back in row order;
// sorting is the dataset store's job.
//
// Zero-revenue policy: a row with a valid timestamp is always kept with
// count=1, recording revenue 0 when the amount is missing, unparseable or
// not positive. A checkout event is still a checkout event with an
// unknown amount.
func Normalize(table model.RawTable, roles model.ColumnRoles) ([]model.TransactionRecord, DiscardTally) {
	var (
		records []model.TransactionRecord
		tally   DiscardTally
	)

	for r := roles.HeaderRow + 1; r < len(table); r++ {
		row := table[r]
		if isEmptyRow(row) {
			tally.EmptyRows++
			continue
		}

		dateCell := strings.TrimSpace(table.Cell(r, roles.DateColumn))
		if dateCell == "" {
			tally.BadDates++
			continue
		}

		ts, ok := parseTimestampCell(dateCell)
		if !ok {
			tally.BadDates++
			continue
		}

		if roles.StatusColumn >= 0 &&
			strings.Contains(table.Cell(r, roles.StatusColumn), sniffedVoidedToken) {
			tally.Voided++
			continue
		}

		revenue := decimal.Zero
		if roles.RevenueColumn >= 0 {
			if val, ok := util.ParseMoney(table.Cell(r, roles.RevenueColumn)); ok && val.IsPositive() {
				revenue = val
			}
		}

		records = append(records, model.NewTransactionRecord(ts, revenue))
	}

	if tally.Total() > 0 {
		util.LogDebugf("Normalized %d records, discarded %d rows (empty=%d badDate=%d voided=%d)",
			len(records), tally.Total(), tally.EmptyRows, tally.BadDates, tally.Voided)
	}

	return records, tally
}

// Matches sniffer.StatusVoided; kept local to avoid importing the sniffer
// just for one token.
const sniffedVoidedToken = "已作廢"

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseTimestampCell interprets a date cell. Slash dates use the locale
// text format; bare numbers are Excel date serials.
func parseTimestampCell(cell string) (ts time.Time, ok bool) {
	if strings.Contains(cell, "/") {
		t, err := util.ParseExportTimestamp(cell)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil || serial <= 0 {
		return time.Time{}, false
	}
	return util.FromExcelSerial(serial), true
}
