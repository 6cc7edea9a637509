package domain

import "time"

type LogKind string

const (
	LogStart  LogKind = "start"
	LogStop   LogKind = "stop"
	LogAdjust LogKind = "adjust"
)

// LogEntry is an append-only audit record of a single mutation. Minutes is
// nil for start entries; stop entries carry the billed minutes and adjust
// entries the signed delta.
type LogEntry struct {
	ID        string
	UserID    string
	Kind      LogKind
	Minutes   *int
	Timestamp time.Time
	Details   string
}
