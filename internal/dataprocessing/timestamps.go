package dataprocessing

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// queryTimeLayouts are tried in order before falling back to an Excel serial
var queryTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"1/2/2006",
	"2006-01-02 3:04:05 PM",
	"2006-01-02 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
}

// ParseQueryTime parses a Query Time cell. Cells that excelize left as a raw
// serial number are converted with the 1900 date system.
func ParseQueryTime(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// CalendarDate returns the calendar day of t (in t's own zone) as midnight UTC,
// so dates compare equal whatever offset the source cell carried.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeTag lowercases and trims a Time Tag
func NormalizeTag(tag string) string {
	return strings.TrimSpace(strings.ToLower(tag))
}
