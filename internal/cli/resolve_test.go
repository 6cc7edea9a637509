package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A typo'd --user on a query must surface an error, never create an empty
// user as a side effect.
func TestLookupUser_UnknownNameDoesNotCreate(t *testing.T) {
	app, _, _ := newTrackTestApp(t)
	ctx := context.Background()

	_, err := lookupUser(ctx, app, "Ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown user")

	users, err := app.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1, "only the logged-in fixture user exists")
	assert.Equal(t, "Noah", users[0].Name)
}

func TestLookupUser_FindsExisting(t *testing.T) {
	app, u, _ := newTrackTestApp(t)

	found, err := lookupUser(context.Background(), app, "Noah")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestMonthsCmd_UnknownUserFails(t *testing.T) {
	app, _, _ := newTrackTestApp(t)

	cmd := newMonthsCmd(app)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"--user", "Ghost"})
	err := cmd.Execute()
	require.Error(t, err)

	users, listErr := app.Users.List(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, users, 1)
}
