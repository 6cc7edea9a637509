// Package clock supplies the current instant to the ledger engine. All
// timestamps originate here in UTC; conversion to the display timezone
// happens only at the presentation boundary.
package clock

import "time"

// Clock yields the current instant. Injected everywhere the engine needs
// "now" so tests can pin time exactly.
type Clock interface {
	Now() time.Time
}

// System is the wall clock, truncated to whole seconds in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
