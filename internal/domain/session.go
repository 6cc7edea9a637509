package domain

import "time"

// WorkSession is one continuous work interval. A session is created in the
// running state (EndedAt and Minutes nil) and transitions exactly once to
// finished, which fixes both fields permanently.
type WorkSession struct {
	ID        string
	UserID    string
	StartedAt time.Time
	EndedAt   *time.Time
	Minutes   *int
}

// Running reports whether the session has not been stopped yet.
func (s *WorkSession) Running() bool {
	return s.EndedAt == nil
}
