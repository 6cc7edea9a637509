package service

import (
	"context"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
)

// TrackerService is the only writer of the ledger. Every mutation commits
// the state change together with exactly one audit log entry.
type TrackerService interface {
	Login(ctx context.Context, name string) (*domain.User, error)
	Start(ctx context.Context, userID string) (*domain.WorkSession, error)
	Stop(ctx context.Context, userID string) (*domain.WorkSession, error)
	Adjust(ctx context.Context, userID string, deltaMinutes int, reason string) (*domain.Adjustment, error)
}

// ReportService is a read-only consumer of the ledger.
type ReportService interface {
	// ActiveSession returns the user's running session, or nil when idle.
	ActiveSession(ctx context.Context, userID string) (*domain.WorkSession, error)
	// MonthTotals returns per-month minute totals, newest month first.
	MonthTotals(ctx context.Context, userID string) ([]domain.MonthTotal, error)
	// CurrentMonthMinutes returns this month's total, 0 when absent.
	CurrentMonthMinutes(ctx context.Context, userID string) (int, error)
	// RecentLogs returns the newest log entries first; limit <= 0 applies
	// the default cap.
	RecentLogs(ctx context.Context, userID string, limit int) ([]*domain.LogEntry, error)
}

// UserService covers user administration outside the tracking flow.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	// Get resolves an existing user by name; it never creates one.
	Get(ctx context.Context, name string) (*domain.User, error)
	Remove(ctx context.Context, name string) error
}
