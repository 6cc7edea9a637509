package cli

import (
	"context"
	"fmt"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(
		newUserListCmd(app),
		newUserRemoveCmd(app),
	)

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(context.Background())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Println("No users yet.")
				return nil
			}

			headers := []string{"NAME", "ID", "CREATED"}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{
					u.Name,
					formatter.TruncID(u.ID),
					formatter.HumanTimestamp(u.CreatedAt, app.Loc),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newUserRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a user and all owned sessions, adjustments, and logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Users.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("User %s removed.\n", args[0])
			return nil
		},
	}
}
