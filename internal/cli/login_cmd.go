package cli

import (
	"context"
	"fmt"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <name>",
		Short: "Log in by name, creating the user on first login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Tracker.Login(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Hello %s! (id %s)\n", formatter.StyleBold.Render(u.Name), formatter.TruncID(u.ID))
			return nil
		},
	}
}
