package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/google/uuid"
)

// MustCreateUser inserts a user via FindOrCreate and fails the test on error.
func MustCreateUser(t *testing.T, users repository.UserRepo, name string) *domain.User {
	t.Helper()
	u, err := users.FindOrCreate(context.Background(), name, time.Now().UTC())
	if err != nil {
		t.Fatalf("creating test user %q: %v", name, err)
	}
	return u
}

// Session options
type SessionOption func(*domain.WorkSession)

// WithEnd marks the session finished at end with the given minutes.
func WithEnd(end time.Time, minutes int) SessionOption {
	return func(s *domain.WorkSession) {
		e := end.UTC()
		s.EndedAt = &e
		s.Minutes = &minutes
	}
}

// NewTestSession builds a running session for userID starting at start.
// Apply WithEnd to make it finished.
func NewTestSession(userID string, start time.Time, opts ...SessionOption) *domain.WorkSession {
	s := &domain.WorkSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartedAt: start.UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestAdjustment builds an adjustment of the given signed minutes.
func NewTestAdjustment(userID string, minutes int, createdAt time.Time) *domain.Adjustment {
	return &domain.Adjustment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Minutes:   minutes,
		Reason:    "test adjustment",
		CreatedAt: createdAt.UTC(),
	}
}

// NewTestLogEntry builds a log entry of the given kind.
func NewTestLogEntry(userID string, kind domain.LogKind, minutes *int, ts time.Time) *domain.LogEntry {
	return &domain.LogEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Minutes:   minutes,
		Timestamp: ts.UTC(),
		Details:   "test entry",
	}
}

// IntPtr returns a pointer to n, for nullable minute fields.
func IntPtr(n int) *int {
	return &n
}
