package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateDurationUnits(db); err != nil {
		return fmt.Errorf("migrating duration units: %w", err)
	}
	return nil
}

// durationUnitKey tracks which unit the minutes columns hold. Earlier
// releases wrote seconds into columns named "minutes"; this engine stores
// minutes everywhere, so legacy rows get converted exactly once instead of
// being silently reinterpreted.
const durationUnitKey = "duration_unit"

// migrateDurationUnits converts legacy seconds-denominated rows to minutes.
//
// A database whose schema_meta lacks the duration_unit row either predates
// this engine (legacy, seconds) or is freshly created (empty, nothing to
// convert). Ledger rows present without the marker are therefore treated as
// seconds. Conversion rounds half-up at the 30-second boundary; adjustments
// that would round to zero keep their sign at ±1 minute so no adjustment
// disappears.
func migrateDurationUnits(db *sql.DB) error {
	ctx := context.Background()

	var unit string
	err := db.QueryRowContext(ctx, `SELECT value FROM schema_meta WHERE key = ?`, durationUnitKey).Scan(&unit)
	switch {
	case err == nil:
		if unit == "minutes" {
			return nil
		}
	case err != sql.ErrNoRows:
		return fmt.Errorf("reading duration unit: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting unit migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var rows int
	if err := tx.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM sessions) +
		(SELECT COUNT(*) FROM adjustments) +
		(SELECT COUNT(*) FROM logs)`).Scan(&rows); err != nil {
		return fmt.Errorf("counting ledger rows: %w", err)
	}

	if rows > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE sessions
			SET minutes = (minutes + 30) / 60
			WHERE minutes IS NOT NULL`); err != nil {
			return fmt.Errorf("converting session durations: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE adjustments
			SET minutes = CASE
				WHEN minutes >= 0 THEN MAX((minutes + 30) / 60, 1)
				ELSE MIN(-((-minutes + 30) / 60), -1)
			END`); err != nil {
			return fmt.Errorf("converting adjustment durations: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE logs
			SET minutes = CASE
				WHEN minutes >= 0 THEN (minutes + 30) / 60
				ELSE -((-minutes + 30) / 60)
			END
			WHERE minutes IS NOT NULL`); err != nil {
			return fmt.Errorf("converting log durations: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_meta (key, value) VALUES (?, 'minutes')
		ON CONFLICT(key) DO UPDATE SET value = 'minutes'`, durationUnitKey); err != nil {
		return fmt.Errorf("recording duration unit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing unit migration: %w", err)
	}
	committed = true

	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schema_meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id       TEXT PRIMARY KEY,
		user_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		start_ts TEXT NOT NULL,
		end_ts   TEXT,
		minutes  INTEGER
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id)`,

	// The single-active-session invariant: at most one running session
	// (end_ts IS NULL) per user, enforced by the storage layer so
	// concurrent starts cannot both succeed.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_active
		ON sessions(user_id) WHERE end_ts IS NULL`,

	`CREATE TABLE IF NOT EXISTS adjustments (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		minutes    INTEGER NOT NULL CHECK(minutes <> 0),
		reason     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_adjustments_user ON adjustments(user_id)`,

	// Logs keep an explicit append sequence (seq = rowid) so "newest first"
	// is creation order, not timestamp order, even when two entries share
	// the same second.
	`CREATE TABLE IF NOT EXISTS logs (
		seq     INTEGER PRIMARY KEY AUTOINCREMENT,
		id      TEXT NOT NULL UNIQUE,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		kind    TEXT NOT NULL CHECK(kind IN ('start','stop','adjust')),
		minutes INTEGER,
		ts      TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_logs_user_seq ON logs(user_id, seq)`,
}
