// Package billing holds the duration policy: how a start/end instant pair
// becomes a billable whole-minute duration. The rules are pure functions so
// the controller and the live display share one definition.
package billing

import (
	"fmt"
	"time"
)

// MinStoppedMinutes is the minimum billed for any session that was actually
// started and stopped. Sub-minute sessions bill 1 minute rather than 0 so
// very short sessions never vanish from the ledger.
const MinStoppedMinutes = 1

// ElapsedSeconds returns the whole seconds between start and end, clamped at
// 0 when end precedes start. Display only, never persisted.
func ElapsedSeconds(start, end time.Time) int {
	sec := int(end.Sub(start) / time.Second)
	if sec < 0 {
		return 0
	}
	return sec
}

// BillableMinutes converts the elapsed interval to whole minutes, rounding
// half-up at the 30-second boundary: 29 leftover seconds round down, 30
// round up. Clamped at 0 for inverted intervals.
func BillableMinutes(start, end time.Time) int {
	sec := ElapsedSeconds(start, end)
	minutes := sec / 60
	if sec%60 >= 30 {
		minutes++
	}
	return minutes
}

// StopMinutes is BillableMinutes with the MinStoppedMinutes floor applied.
// Used when finishing a session; the floor comes after the 0-clamp, so even
// a skewed-clock stop bills 1 minute.
func StopMinutes(start, end time.Time) int {
	m := BillableMinutes(start, end)
	if m < MinStoppedMinutes {
		return MinStoppedMinutes
	}
	return m
}

// FormatHMS renders a second count as HH:MM:SS. Negative values render as
// 00:00:00.
func FormatHMS(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
