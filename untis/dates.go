package untis

import (
	"regexp"
	"strconv"
	"time"
)

var (
	dateRe     = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)
	dateTimeRe = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})[ ,]+(\d{1,2}):(\d{2})`)
)

// ParseDate extracts a German-format date ("2.9.2026", usually prefixed
// with the weekday) from free text. Returns the zero time when no date is
// found.
func ParseDate(text string) time.Time {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

// ParseDateTime extracts a German-format date with a time of day
// ("02.09.2026 07:45"). Falls back to ParseDate when only a date is
// present.
func ParseDateTime(text string) time.Time {
	m := dateTimeRe.FindStringSubmatch(text)
	if m == nil {
		return ParseDate(text)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local)
}
