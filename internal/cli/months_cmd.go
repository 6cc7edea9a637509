package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newMonthsCmd(app *App) *cobra.Command {
	var userName string
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "months",
		Short: "Show per-month time totals, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := lookupUser(ctx, app, userName)
			if err != nil {
				return err
			}

			totals, err := app.Reports.MonthTotals(ctx, u.ID)
			if err != nil {
				return err
			}

			if asCSV {
				records := [][]string{{"month", "minutes", "duration"}}
				for _, t := range totals {
					records = append(records, []string{
						t.Month,
						strconv.Itoa(t.Minutes),
						formatter.MinutesHMS(t.Minutes),
					})
				}
				return writeCSV(os.Stdout, records)
			}

			if len(totals) == 0 {
				fmt.Println("No time booked yet.")
				return nil
			}

			headers := []string{"MONTH", "MINUTES", "DURATION"}
			rows := make([][]string, 0, len(totals))
			for _, t := range totals {
				rows = append(rows, []string{
					t.Month,
					strconv.Itoa(t.Minutes),
					formatter.MinutesHMS(t.Minutes),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user", "", "User name")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Emit CSV instead of a table")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
