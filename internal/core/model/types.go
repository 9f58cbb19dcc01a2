package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTable is the decoded rectangular view of an export file. Rows may be
// ragged; missing cells read as empty strings.
type RawTable [][]string

// Cell returns the cell at (row, col), or "" when the coordinates fall
// outside the table.
func (t RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t) {
		return ""
	}
	r := t[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ColumnRoles records where the schema sniffer located the interesting
// columns. RevenueColumn and StatusColumn are -1 when undetected.
type ColumnRoles struct {
	HeaderRow     int `json:"headerRow"`
	DateColumn    int `json:"dateColumn"`
	RevenueColumn int `json:"revenueColumn"`
	StatusColumn  int `json:"statusColumn"`
}

// TransactionRecord is one completed checkout event. Records are created
// during normalization and never mutated afterwards.
type TransactionRecord struct {
	Timestamp time.Time       `json:"timestamp"`
	DayOfWeek time.Weekday    `json:"dayOfWeek"`
	Hour      int             `json:"hour"`
	Count     int             `json:"count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// NewTransactionRecord builds a record from a timestamp and a revenue
// amount, deriving the weekday and hour fields. Count is always 1: each
// record represents a single checkout.
func NewTransactionRecord(ts time.Time, revenue decimal.Decimal) TransactionRecord {
	return TransactionRecord{
		Timestamp: ts,
		DayOfWeek: ts.Weekday(),
		Hour:      ts.Hour(),
		Count:     1,
		Revenue:   revenue,
	}
}

// DateKey returns the record's calendar date in 2006-01-02 form, the key
// used by per-date aggregation buckets.
func (r TransactionRecord) DateKey() string {
	return r.Timestamp.Format("2006-01-02")
}

// WeekdaySet is a set of weekdays encoded as a bitmask (bit 0 = Sunday).
type WeekdaySet uint8

// NewWeekdaySet builds a set from the given weekdays.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// AllWeekdays returns the set containing every day of the week.
func AllWeekdays() WeekdaySet {
	return WeekdaySet(0x7f)
}

// Weekend returns the set {Sunday, Saturday}.
func Weekend() WeekdaySet {
	return NewWeekdaySet(time.Sunday, time.Saturday)
}

// Workdays returns the set {Monday..Friday}.
func Workdays() WeekdaySet {
	return NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
}

// Contains reports whether d is a member of the set.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// IsEmpty reports whether no weekday is selected.
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// FilterSpec selects records whose calendar date falls in [Start, End]
// (both inclusive, time-of-day ignored) and whose weekday is in Weekdays.
// An empty weekday set selects nothing.
type FilterSpec struct {
	Start    time.Time
	End      time.Time
	Weekdays WeekdaySet
}

// SeriesSpec is an independently evaluated filter with display metadata,
// used for multi-series comparisons against one dataset snapshot.
type SeriesSpec struct {
	Name   string
	Color  string
	Filter FilterSpec
}

// FileFailure describes one file that could not contribute records to a
// load batch.
type FileFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// LoadResult summarizes a batch load for the caller: how many records were
// installed, which files contributed, which failed and why, and the date
// range covered by the loaded data.
type LoadResult struct {
	RecordsLoaded  int           `json:"recordsLoaded"`
	FilesSucceeded []string      `json:"filesSucceeded"`
	FilesFailed    []FileFailure `json:"filesFailed,omitempty"`
	DateRangeMin   time.Time     `json:"dateRangeMin"`
	DateRangeMax   time.Time     `json:"dateRangeMax"`
}
