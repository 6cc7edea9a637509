package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRepo_AppendAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(db)
	repo := repository.NewSQLiteLogRepo(db)
	ctx := context.Background()

	u := testutil.MustCreateUser(t, users, "Noah")
	ts := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	e := testutil.NewTestLogEntry(u.ID, domain.LogStop, testutil.IntPtr(42), ts)
	e.Details = "Stopped at 2024-03-15 10:00:00 after 00:42:00"
	require.NoError(t, repo.Append(ctx, e))

	entries, err := repo.ListRecent(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.LogStop, entries[0].Kind)
	require.NotNil(t, entries[0].Minutes)
	assert.Equal(t, 42, *entries[0].Minutes)
	assert.Equal(t, e.Details, entries[0].Details)
}

func TestLogRepo_ListRecent_NewestFirstByAppendOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(db)
	repo := repository.NewSQLiteLogRepo(db)
	ctx := context.Background()

	u := testutil.MustCreateUser(t, users, "Noah")
	// All entries share one timestamp; append order must still win.
	ts := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		e := testutil.NewTestLogEntry(u.ID, domain.LogStart, nil, ts)
		e.Details = fmt.Sprintf("entry-%d", i)
		require.NoError(t, repo.Append(ctx, e))
	}

	entries, err := repo.ListRecent(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "entry-4", entries[0].Details)
	assert.Equal(t, "entry-0", entries[4].Details)
}

func TestLogRepo_ListRecent_AppliesLimit(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(db)
	repo := repository.NewSQLiteLogRepo(db)
	ctx := context.Background()

	u := testutil.MustCreateUser(t, users, "Noah")
	ts := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		require.NoError(t, repo.Append(ctx, testutil.NewTestLogEntry(u.ID, domain.LogAdjust, testutil.IntPtr(i+1), ts)))
	}

	entries, err := repo.ListRecent(ctx, u.ID, 7)
	require.NoError(t, err)
	assert.Len(t, entries, 7)
}

func TestLogRepo_NilMinutesForStart(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(db)
	repo := repository.NewSQLiteLogRepo(db)
	ctx := context.Background()

	u := testutil.MustCreateUser(t, users, "Noah")
	ts := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, testutil.NewTestLogEntry(u.ID, domain.LogStart, nil, ts)))

	entries, err := repo.ListRecent(ctx, u.ID, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Minutes)
}
