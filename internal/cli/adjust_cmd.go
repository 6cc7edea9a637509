package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newAdjustCmd(app *App) *cobra.Command {
	var userName, reason string
	var minutes int

	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Book a manual time adjustment in minutes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := lookupUser(ctx, app, userName)
			if err != nil {
				return err
			}

			// Without --minutes, fall back to an interactive form
			// when a terminal is attached.
			if !cmd.Flags().Changed("minutes") {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--minutes is required in non-interactive mode")
				}
				minutes, reason, err = runAdjustForm()
				if err != nil {
					return err
				}
			}

			adj, err := app.Tracker.Adjust(ctx, u.ID, minutes, reason)
			if err != nil {
				return err
			}

			fmt.Printf("%s minutes booked for %s.\n",
				formatter.StyleYellow.Render(formatter.SignedMinutes(adj.Minutes)), u.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user", "", "User name")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Signed minute delta, e.g. -15 or 30")
	cmd.Flags().StringVar(&reason, "reason", "", "Optional reason")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// runAdjustForm collects the delta and reason interactively.
func runAdjustForm() (int, string, error) {
	var minutesStr, reason string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Minutes (signed, e.g. -15 or 30)").
				Placeholder("30").
				Value(&minutesStr).
				Validate(validateNonZeroInt),
			huh.NewInput().
				Title("Reason (optional)").
				Value(&reason),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return 0, "", fmt.Errorf("running adjustment form: %w", err)
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(minutesStr))
	if err != nil {
		return 0, "", fmt.Errorf("parsing minutes: %w", err)
	}
	return minutes, reason, nil
}

func validateNonZeroInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number of minutes")
	}
	if n == 0 {
		return fmt.Errorf("enter a nonzero number of minutes")
	}
	return nil
}
