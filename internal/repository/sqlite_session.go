package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/db"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

// Insert stores a new session. A running session (end_ts NULL) trips the
// partial unique index when the user already has one, which comes back as
// ErrConflict. This is the atomic guard behind the single-active-session
// invariant; there is no check-then-act window.
func (r *SQLiteSessionRepo) Insert(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO sessions (id, user_id, start_ts, end_ts, minutes)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.StartedAt.UTC().Format(time.RFC3339),
		nullableTimeToString(s.EndedAt),
		nullableIntToValue(s.Minutes),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("active session exists for user %s: %w", s.UserID, ErrConflict)
		}
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.WorkSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, start_ts, end_ts, minutes FROM sessions WHERE id = ?`, id)
	return r.scanSession(row)
}

// Active returns the user's running session, or ErrNotFound when idle.
func (r *SQLiteSessionRepo) Active(ctx context.Context, userID string) (*domain.WorkSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, start_ts, end_ts, minutes
		FROM sessions WHERE user_id = ? AND end_ts IS NULL`, userID)
	return r.scanSession(row)
}

// Finish transitions a running session to finished, fixing end instant and
// minutes permanently. Finishing a session that is not running (already
// finished, or unknown id) matches no row and returns ErrNotFound.
func (r *SQLiteSessionRepo) Finish(ctx context.Context, id string, end time.Time, minutes int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET end_ts = ?, minutes = ? WHERE id = ? AND end_ts IS NULL`,
		end.UTC().Format(time.RFC3339), minutes, id)
	if err != nil {
		return fmt.Errorf("finishing session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("running session %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListFinished(ctx context.Context, userID string) ([]*domain.WorkSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, start_ts, end_ts, minutes
		FROM sessions WHERE user_id = ? AND end_ts IS NOT NULL
		ORDER BY end_ts DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing finished sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.WorkSession
	for rows.Next() {
		var s domain.WorkSession
		var startStr string
		var endStr sql.NullString
		var minutes sql.NullInt64
		if err := rows.Scan(&s.ID, &s.UserID, &startStr, &endStr, &minutes); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		s.StartedAt, err = time.Parse(time.RFC3339, startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing start_ts: %w", err)
		}
		s.EndedAt = parseNullableTime(endStr)
		s.Minutes = nullableIntFromSQL(minutes)
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var startStr string
	var endStr sql.NullString
	var minutes sql.NullInt64

	err := row.Scan(&s.ID, &s.UserID, &startStr, &endStr, &minutes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	s.StartedAt, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_ts: %w", err)
	}
	s.EndedAt = parseNullableTime(endStr)
	s.Minutes = nullableIntFromSQL(minutes)
	return &s, nil
}
