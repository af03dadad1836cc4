package user

import (
	"fmt"

	"github.com/spf13/cobra"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd [username]",
	Short: "Change a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := currentApp()
		if err != nil {
			return err
		}

		pw, err := readPassword(cmd, cmd.InOrStdin())
		if err != nil {
			return err
		}

		if err := app.Users.SetPassword(cmd.Context(), args[0], pw); err != nil {
			return fmt.Errorf("failed to change password: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Password changed for %s\n", args[0])
		return nil
	},
}

func init() {
	passwdCmd.Flags().StringVarP(&password, "password", "p", "", "new password")
}
