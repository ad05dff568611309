package dataquality

import (
	"strings"
	"time"
)

// dayFirstLayouts are tried in order when parsing date cells. Day-first
// layouts come before ISO ones because the workbook is maintained with
// European date conventions.
var dayFirstLayouts = []string{
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2.1.2006",
	"02-01-2006 15:04:05",
	"02/01/2006 15:04:05",
	"02-01-2006 15:04",
	"02/01/2006 15:04",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDayFirstDate parses a date cell with day-first interpretation and
// discards any time-of-day component, keeping only the calendar date at
// midnight UTC. Unparseable values report false.
func ParseDayFirstDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// dateCell coerces a raw cell into a calendar date. time.Time values pass
// through with their time component dropped; strings are parsed day-first.
func dateCell(v any) (time.Time, bool) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		y, m, day := d.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), true
	case string:
		return ParseDayFirstDate(d)
	default:
		return time.Time{}, false
	}
}
