package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/cli/formatter"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var userName string
	var limit int
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the audit logbook, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := lookupUser(ctx, app, userName)
			if err != nil {
				return err
			}

			if limit <= 0 {
				limit = app.LogLimit
			}
			entries, err := app.Reports.RecentLogs(ctx, u.ID, limit)
			if err != nil {
				return err
			}

			if asCSV {
				records := [][]string{{"ts", "kind", "minutes", "details"}}
				for _, e := range entries {
					records = append(records, []string{
						formatter.HumanTimestamp(e.Timestamp, app.Loc),
						string(e.Kind),
						logMinutes(e),
						e.Details,
					})
				}
				return writeCSV(os.Stdout, records)
			}

			if len(entries) == 0 {
				fmt.Println("Logbook is empty.")
				return nil
			}

			headers := []string{"TIME", "KIND", "MINUTES", "DETAILS"}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					formatter.HumanTimestamp(e.Timestamp, app.Loc),
					formatter.KindStyle(e.Kind).Render(string(e.Kind)),
					logMinutes(e),
					e.Details,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user", "", "User name")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries (0 = configured default)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Emit CSV instead of a table")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func logMinutes(e *domain.LogEntry) string {
	if e.Minutes == nil {
		return ""
	}
	return strconv.Itoa(*e.Minutes)
}
