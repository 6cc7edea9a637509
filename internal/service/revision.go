package service

import "sync/atomic"

// Revision is a process-wide counter bumped by every ledger mutation. Report
// caches key on it, so any write invalidates all derived totals without the
// aggregator tracking what changed.
type Revision struct {
	n atomic.Int64
}

// NewRevision creates a Revision starting at 0.
func NewRevision() *Revision {
	return &Revision{}
}

// Bump increments the revision and returns the new value.
func (r *Revision) Bump() int64 {
	return r.n.Add(1)
}

// Current returns the latest revision.
func (r *Revision) Current() int64 {
	return r.n.Load()
}
