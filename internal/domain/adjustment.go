package domain

import "time"

// Adjustment is a signed manual correction in whole minutes, never zero.
// Immutable once created; it counts toward the month of CreatedAt.
type Adjustment struct {
	ID        string
	UserID    string
	Minutes   int
	Reason    string
	CreatedAt time.Time
}
