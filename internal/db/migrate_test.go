package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"schema_meta", "users", "sessions", "adjustments", "logs"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}

	var idx string
	err = database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_sessions_one_active'`).Scan(&idx)
	assert.NoError(t, err, "partial unique index on active sessions should exist")
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// Re-running all migrations must not fail or duplicate anything.
	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_FreshDatabaseRecordsMinutesUnit(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var unit string
	require.NoError(t, database.QueryRow(
		`SELECT value FROM schema_meta WHERE key = 'duration_unit'`).Scan(&unit))
	assert.Equal(t, "minutes", unit)
}

func TestMigrate_ConvertsLegacySecondsRows(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// Simulate a legacy database: second-denominated values with the unit
	// marker missing.
	_, err = database.Exec(`INSERT INTO users (id, name, created_at) VALUES ('u1', 'Noah', '2024-01-01T10:00:00Z')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO sessions (id, user_id, start_ts, end_ts, minutes)
		VALUES ('s1', 'u1', '2024-01-01T10:00:00Z', '2024-01-01T10:02:40Z', 160)`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO adjustments (id, user_id, minutes, reason, created_at)
		VALUES ('a1', 'u1', -90, 'correction', '2024-01-02T10:00:00Z'),
		       ('a2', 'u1', 10, 'tiny', '2024-01-02T11:00:00Z')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO logs (id, user_id, kind, minutes, ts, details)
		VALUES ('l1', 'u1', 'stop', 160, '2024-01-01T10:02:40Z', ''),
		       ('l2', 'u1', 'start', NULL, '2024-01-01T10:00:00Z', '')`)
	require.NoError(t, err)
	_, err = database.Exec(`DELETE FROM schema_meta WHERE key = 'duration_unit'`)
	require.NoError(t, err)

	require.NoError(t, Migrate(database))

	var sessionMin int
	require.NoError(t, database.QueryRow(`SELECT minutes FROM sessions WHERE id = 's1'`).Scan(&sessionMin))
	assert.Equal(t, 3, sessionMin, "160s rounds half-up to 3 minutes")

	var adjMin int
	require.NoError(t, database.QueryRow(`SELECT minutes FROM adjustments WHERE id = 'a1'`).Scan(&adjMin))
	assert.Equal(t, -2, adjMin, "-90s rounds half-up away from zero to -2 minutes")
	require.NoError(t, database.QueryRow(`SELECT minutes FROM adjustments WHERE id = 'a2'`).Scan(&adjMin))
	assert.Equal(t, 1, adjMin, "a sub-30s adjustment keeps its sign instead of becoming zero")

	var logMin int
	require.NoError(t, database.QueryRow(`SELECT minutes FROM logs WHERE id = 'l1'`).Scan(&logMin))
	assert.Equal(t, 3, logMin)

	var unit string
	require.NoError(t, database.QueryRow(
		`SELECT value FROM schema_meta WHERE key = 'duration_unit'`).Scan(&unit))
	assert.Equal(t, "minutes", unit)

	// Running again must not convert twice.
	require.NoError(t, Migrate(database))
	require.NoError(t, database.QueryRow(`SELECT minutes FROM sessions WHERE id = 's1'`).Scan(&sessionMin))
	assert.Equal(t, 3, sessionMin, "conversion must be one-time")
}

func TestSchema_RejectsZeroAdjustment(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO users (id, name, created_at) VALUES ('u1', 'Noah', '2024-01-01T10:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO adjustments (id, user_id, minutes, reason, created_at)
		VALUES ('a1', 'u1', 0, '', '2024-01-01T10:00:00Z')`)
	assert.Error(t, err, "CHECK constraint should reject zero-minute adjustments")
}
