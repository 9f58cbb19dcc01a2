package filter

import (
	"posinsight/internal/core/model"
	"posinsight/internal/util"
)

// Apply returns the records matching spec: calendar date within
// [Start, End] (inclusive, time-of-day ignored) and weekday in the
// selected set. An empty weekday set yields an empty view; that is a
// valid selection, not an error. The input is never mutated, so repeated
// and concurrent calls against one snapshot are safe.
func Apply(records []model.TransactionRecord, spec model.FilterSpec) []model.TransactionRecord {
	if spec.Weekdays.IsEmpty() {
		return nil
	}

	start := util.DateOnly(spec.Start)
	end := util.DateOnly(spec.End)

	var out []model.TransactionRecord
	for _, rec := range records {
		d := util.DateOnly(rec.Timestamp)
		if d.Before(start) || d.After(end) {
			continue
		}
		if !spec.Weekdays.Contains(rec.DayOfWeek) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
