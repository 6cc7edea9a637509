package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/clock"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tracker service.TrackerService
	Reports service.ReportService
	Users   service.UserService

	// Clock supplies "now" for elapsed displays; the same instance drives
	// the services.
	Clock clock.Clock

	// Loc is the display timezone; storage stays UTC.
	Loc *time.Location

	// LogLimit is the default logbook cap from configuration.
	LogLimit int

	// IsInteractive reports whether stdin is a terminal; gates the huh
	// adjustment form and the live track view.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "zeit" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "zeit",
		Short: "Personal and team time-tracking ledger",
	}

	root.AddCommand(
		newLoginCmd(app),
		newStartCmd(app),
		newStopCmd(app),
		newAdjustCmd(app),
		newStatusCmd(app),
		newMonthsCmd(app),
		newLogCmd(app),
		newTrackCmd(app),
		newUserCmd(app),
	)

	return root
}

// resolveUser logs the named user in (creating on first login) and returns
// it. Only start goes through here; every other --user command requires an
// existing user via lookupUser.
func resolveUser(ctx context.Context, app *App, name string) (*domain.User, error) {
	if name == "" {
		return nil, fmt.Errorf("--user is required")
	}
	return app.Tracker.Login(ctx, name)
}

// lookupUser resolves an existing user for read-only commands. A typo'd
// name is an error, never a freshly created empty user.
func lookupUser(ctx context.Context, app *App, name string) (*domain.User, error) {
	if name == "" {
		return nil, fmt.Errorf("--user is required")
	}
	u, err := app.Users.Get(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("unknown user %q; log in first", name)
	}
	return u, err
}
