package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const DefaultDateFormat = "2006-01-02"

// cellDateLayouts are tried in order. Day-first layouts come before the
// month-first TikTok layout, which always carries an AM/PM suffix.
var cellDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"01/02/2006 3:04:05 PM",
	"01/02/2006 03:04:05 PM",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04",
	"02-01-2006",
	"02 Jan 2006 15:04",
	"02 Jan 2006",
	"2 Jan 2006",
}

// ParseCellDate converts a spreadsheet date cell into an ISO calendar day.
// It returns "" when the cell is empty or no layout matches.
func ParseCellDate(raw string) string {
	t, ok := ParseCellTime(raw)
	if !ok {
		return ""
	}
	return t.Format(DefaultDateFormat)
}

// ParseCellTime parses a date cell, including Excel serial day numbers.
func ParseCellTime(raw string) (time.Time, bool) {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"'`))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range cellDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Unformatted date cells arrive as serial numbers, e.g. "45292.5".
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 1 && serial < 2958466 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
