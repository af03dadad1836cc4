package user

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List users",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := currentApp()
		if err != nil {
			return err
		}

		users, err := app.Users.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found.")
			return nil
		}

		fmt.Fprintf(out, "%-6s %-20s %s\n", "ID", "USERNAME", "CREATED")
		for _, u := range users {
			fmt.Fprintf(out, "%-6d %-20s %s\n", u.ID(), u.Username(), u.CreatedAt().Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}
