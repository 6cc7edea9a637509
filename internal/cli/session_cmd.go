package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/billing"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/cli/formatter"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var userName string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a work session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, userName)
			if err != nil {
				return err
			}

			session, err := app.Tracker.Start(ctx, u.ID)
			if err != nil {
				if errors.Is(err, repository.ErrConflict) {
					// Informational, not a failure: the running
					// session stays untouched.
					fmt.Println(formatter.StyleYellow.Render("A session is already running. Stop it first."))
					return nil
				}
				return err
			}

			fmt.Printf("Session started at %s.\n",
				formatter.HumanTimestamp(session.StartedAt, app.Loc))
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user", "", "User name")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newStopCmd(app *App) *cobra.Command {
	var userName string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running work session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := lookupUser(ctx, app, userName)
			if err != nil {
				return err
			}

			session, err := app.Tracker.Stop(ctx, u.ID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("no session is running for %s", u.Name)
				}
				return err
			}

			elapsed := billing.ElapsedSeconds(session.StartedAt, *session.EndedAt)
			fmt.Printf("Stopped after %s, %s booked.\n",
				billing.FormatHMS(elapsed),
				formatter.StyleGreen.Render(fmt.Sprintf("%d min", *session.Minutes)))
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user", "", "User name")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
