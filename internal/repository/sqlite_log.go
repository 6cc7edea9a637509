package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/db"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
)

// SQLiteLogRepo implements LogRepo using a SQLite database. The log table is
// append-only; nothing here mutates or deletes entries.
type SQLiteLogRepo struct {
	db db.DBTX
}

// NewSQLiteLogRepo creates a new SQLiteLogRepo.
func NewSQLiteLogRepo(db db.DBTX) *SQLiteLogRepo {
	return &SQLiteLogRepo{db: db}
}

func (r *SQLiteLogRepo) Append(ctx context.Context, e *domain.LogEntry) error {
	query := `INSERT INTO logs (id, user_id, kind, minutes, ts, details)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		string(e.Kind),
		nullableIntToValue(e.Minutes),
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Details,
	)
	if err != nil {
		return fmt.Errorf("appending log entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first, ordered by append sequence,
// capped to limit.
func (r *SQLiteLogRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, kind, minutes, ts, details
		FROM logs WHERE user_id = ? ORDER BY seq DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing log entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.LogEntry
	for rows.Next() {
		var e domain.LogEntry
		var kind, tsStr string
		var minutes sql.NullInt64
		if err := rows.Scan(&e.ID, &e.UserID, &kind, &minutes, &tsStr, &e.Details); err != nil {
			return nil, fmt.Errorf("scanning log row: %w", err)
		}
		e.Kind = domain.LogKind(kind)
		e.Minutes = nullableIntFromSQL(minutes)
		e.Timestamp, err = time.Parse(time.RFC3339, tsStr)
		if err != nil {
			return nil, fmt.Errorf("parsing ts: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log entries: %w", err)
	}
	return entries, nil
}
