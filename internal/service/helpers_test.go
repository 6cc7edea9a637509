package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testStart is the pinned instant most service tests begin at.
var testStart = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	db          *sql.DB
	users       *repository.SQLiteUserRepo
	sessions    *repository.SQLiteSessionRepo
	adjustments *repository.SQLiteAdjustmentRepo
	logs        *repository.SQLiteLogRepo
	clk         *testutil.FakeClock
	rev         *Revision
	tracker     TrackerService
	reports     ReportService
}

// newTestEnv wires the full engine against an in-memory database, a fake
// clock pinned to testStart, and the given display timezone.
func newTestEnv(t *testing.T, loc *time.Location, allowed []string) *testEnv {
	t.Helper()

	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	sessions := repository.NewSQLiteSessionRepo(database)
	adjustments := repository.NewSQLiteAdjustmentRepo(database)
	logs := repository.NewSQLiteLogRepo(database)

	clk := testutil.NewFakeClock(testStart)
	rev := NewRevision()
	uow := testutil.NewTestUoW(database)

	tracker := NewTrackerService(users, sessions, uow, clk, loc, rev, allowed, zerolog.Nop())
	reports, err := NewReportService(sessions, adjustments, logs, clk, loc, rev)
	require.NoError(t, err)

	return &testEnv{
		db:          database,
		users:       users,
		sessions:    sessions,
		adjustments: adjustments,
		logs:        logs,
		clk:         clk,
		rev:         rev,
		tracker:     tracker,
		reports:     reports,
	}
}
