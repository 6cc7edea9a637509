package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *App) *cobra.Command {
	var userName string

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Live tracking view with a running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("track needs an interactive terminal")
			}

			u, err := lookupUser(context.Background(), app, userName)
			if err != nil {
				return err
			}

			model := newTrackModel(app, u)
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("running track view: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user", "", "User name")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
