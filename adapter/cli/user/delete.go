package user

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [username]",
	Short:   "Delete a user and their tasks",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := currentApp()
		if err != nil {
			return err
		}

		if err := app.Users.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User deleted: %s\n", args[0])
		return nil
	},
}
