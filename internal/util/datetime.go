package util

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// POS exports write timestamps as "2025/9/1 下午 5:23:55": a slash date
// followed by an optional meridiem marker (上午 morning / 下午 afternoon)
// and a 12-hour clock time.
var (
	exportDatePattern = regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)
	exportTimePattern = regexp.MustCompile(`(上午|下午)?\s*(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?`)
)

// Excel stores dates as day counts with day 25569 landing on the Unix
// epoch (the serial epoch sits at 1899-12-30).
const excelSerialUnixOffset = 25569

// FromExcelSerial converts an Excel date serial to a UTC timestamp.
func FromExcelSerial(serial float64) time.Time {
	secs := math.Round((serial - excelSerialUnixOffset) * 86400)
	return time.Unix(int64(secs), 0).UTC()
}

// ParseExportTimestamp parses a locale-formatted export timestamp. A
// missing time portion defaults to noon. The meridiem rules follow the
// 12-hour clock: 下午 with hour≠12 adds 12, 上午 with hour==12 wraps to 0.
func ParseExportTimestamp(s string) (time.Time, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	datePart := fields[0]
	if !exportDatePattern.MatchString(datePart) {
		return time.Time{}, fmt.Errorf("unrecognized date %q", datePart)
	}

	parts := strings.Split(datePart, "/")
	year, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])

	hour, minute, second := 12, 0, 0
	if len(fields) > 1 {
		timePart := strings.Join(fields[1:], " ")
		if m := exportTimePattern.FindStringSubmatch(timePart); m != nil {
			meridiem := m[1]
			hour, _ = strconv.Atoi(m[2])
			minute, _ = strconv.Atoi(m[3])
			if m[4] != "" {
				second, _ = strconv.Atoi(m[4])
			}

			if meridiem == "下午" && hour != 12 {
				hour += 12
			} else if meridiem == "上午" && hour == 12 {
				hour = 0
			}
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 ||
		hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("out-of-range timestamp %q", s)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	// time.Date normalizes overflow (e.g. Feb 30 -> Mar 2); reject rows
	// where that happened.
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", datePart)
	}

	return t, nil
}

// DateOnly truncates a timestamp to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
