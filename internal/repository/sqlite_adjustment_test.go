package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustmentRepo_InsertAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(db)
	repo := repository.NewSQLiteAdjustmentRepo(db)
	ctx := context.Background()

	u := testutil.MustCreateUser(t, users, "Noah")
	ts := time.Date(2024, 4, 5, 12, 0, 0, 0, time.UTC)

	a := testutil.NewTestAdjustment(u.ID, -15, ts)
	a.Reason = "correction"
	require.NoError(t, repo.Insert(ctx, a))

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, -15, list[0].Minutes)
	assert.Equal(t, "correction", list[0].Reason)
	assert.True(t, list[0].CreatedAt.Equal(ts))
}

func TestAdjustmentRepo_ListByUser_ScopedToUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(db)
	repo := repository.NewSQLiteAdjustmentRepo(db)
	ctx := context.Background()

	noah := testutil.MustCreateUser(t, users, "Noah")
	elena := testutil.MustCreateUser(t, users, "Elena")
	ts := time.Date(2024, 4, 5, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, testutil.NewTestAdjustment(noah.ID, 30, ts)))
	require.NoError(t, repo.Insert(ctx, testutil.NewTestAdjustment(elena.ID, -10, ts)))

	list, err := repo.ListByUser(ctx, noah.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 30, list[0].Minutes)
}
