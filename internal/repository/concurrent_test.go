package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/db"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp
// directory. Unlike :memory:, a file-backed DB shares state across all
// connections in the pool, which is required to test real concurrent access
// with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentStart_ExactlyOneWins pins the single-active-session
// invariant under a genuine race: many goroutines insert a running session
// for the same user at once. The partial unique index must admit exactly
// one and reject the rest with ErrConflict.
func TestConcurrentStart_ExactlyOneWins(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	users := repository.NewSQLiteUserRepo(database)
	sessions := repository.NewSQLiteSessionRepo(database)
	u := testutil.MustCreateUser(t, users, "Noah")

	const attempts = 8
	start := time.Now().UTC()

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = sessions.Insert(ctx, testutil.NewTestSession(u.ID, start))
		}(i)
	}
	wg.Wait()

	var won, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, repository.ErrConflict):
			conflicted++
		default:
			t.Errorf("unexpected error from concurrent insert: %v", err)
		}
	}
	assert.Equal(t, 1, won, "exactly one start must succeed")
	assert.Equal(t, attempts-1, conflicted, "all other starts must see ErrConflict")

	active, err := sessions.Active(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, active)

	var count int
	require.NoError(t, database.QueryRow(
		`SELECT COUNT(*) FROM sessions WHERE user_id = ? AND end_ts IS NULL`, u.ID).Scan(&count))
	assert.Equal(t, 1, count, "at most one running session per user, always")
}

// TestConcurrentFirstLogin_SingleUser exercises the find-or-create race:
// all goroutines log in with the same fresh name and must agree on one user.
func TestConcurrentFirstLogin_SingleUser(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	users := repository.NewSQLiteUserRepo(database)

	const logins = 8
	var wg sync.WaitGroup
	ids := make([]string, logins)
	errs := make([]error, logins)
	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			u, err := users.FindOrCreate(ctx, "Elena", time.Now().UTC())
			if err != nil {
				errs[n] = err
				return
			}
			ids[n] = u.ID
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "login %d failed", i)
	}
	for i := 1; i < logins; i++ {
		assert.Equal(t, ids[0], ids[i], "all logins must resolve to the same user")
	}

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users WHERE name = 'Elena'`).Scan(&count))
	assert.Equal(t, 1, count)
}

// TestConcurrentAccess_ReadDuringWrite verifies that log reads stay
// consistent while appends are in progress. WAL mode allows concurrent
// readers with a single writer, the tracker's normal operating mode.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	users := repository.NewSQLiteUserRepo(database)
	logs := repository.NewSQLiteLogRepo(database)
	u := testutil.MustCreateUser(t, users, "Timon")

	var wg sync.WaitGroup

	// Writer goroutine: append 20 entries sequentially.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			e := testutil.NewTestLogEntry(u.ID, "adjust", testutil.IntPtr(i+1), time.Now().UTC())
			e.Details = fmt.Sprintf("entry-%d", i)
			if err := logs.Append(ctx, e); err != nil {
				t.Errorf("writer: append %d: %v", i, err)
				return
			}
		}
	}()

	// Reader goroutines: repeatedly list while writes happen.
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				entries, err := logs.ListRecent(ctx, u.ID, 50)
				if err != nil {
					t.Errorf("reader %d: list logs: %v", reader, err)
					return
				}
				// Entries should be a consistent snapshot (not half-written).
				for _, e := range entries {
					if e.ID == "" || e.UserID == "" {
						t.Errorf("reader %d: got entry with empty ID", reader)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	entries, err := logs.ListRecent(ctx, u.ID, 50)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}
