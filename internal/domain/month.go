package domain

import "time"

// MonthKeyLayout formats a time into the YYYY-MM bucket key.
const MonthKeyLayout = "2006-01"

// MonthTotal pairs a YYYY-MM key (computed in the display timezone) with the
// summed whole-minute duration of that month. Derived, never stored.
type MonthTotal struct {
	Month   string
	Minutes int
}

// MonthKey returns the YYYY-MM bucket key for t in the given location.
func MonthKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(MonthKeyLayout)
}
