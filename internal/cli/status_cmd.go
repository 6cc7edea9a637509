package cli

import (
	"context"
	"fmt"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/billing"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var userName string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active session and this month's total",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := lookupUser(ctx, app, userName)
			if err != nil {
				return err
			}

			active, err := app.Reports.ActiveSession(ctx, u.ID)
			if err != nil {
				return err
			}
			monthMinutes, err := app.Reports.CurrentMonthMinutes(ctx, u.ID)
			if err != nil {
				return err
			}

			var lines []string
			lines = append(lines, fmt.Sprintf("Hello %s!", formatter.StyleBold.Render(u.Name)))

			if active != nil {
				elapsed := billing.ElapsedSeconds(active.StartedAt, app.Clock.Now())
				lines = append(lines, fmt.Sprintf("Running since  %s  (%s)",
					formatter.HumanTimestamp(active.StartedAt, app.Loc),
					formatter.StyleGreen.Render(billing.FormatHMS(elapsed))))
			} else {
				lines = append(lines, formatter.StyleDim.Render("No session running."))
			}

			lines = append(lines, fmt.Sprintf("Current month  %s",
				formatter.StyleBlue.Render(formatter.MinutesHMS(monthMinutes))))

			content := ""
			for i, l := range lines {
				if i > 0 {
					content += "\n"
				}
				content += l
			}
			fmt.Println(formatter.RenderBox("Zeiterfassung", content))
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user", "", "User name")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
