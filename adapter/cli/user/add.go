package user

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Add a user",
	Long: `Add a user. The password is read from standard input unless
--password is given.

Examples:
  todolist user add alice --password s3cret
  echo s3cret | todolist user add alice`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := currentApp()
		if err != nil {
			return err
		}

		pw, err := readPassword(cmd, cmd.InOrStdin())
		if err != nil {
			return err
		}

		u, err := app.Users.Add(cmd.Context(), args[0], pw)
		if err != nil {
			return fmt.Errorf("failed to add user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User added: %s (id %d)\n", u.Username(), u.ID())
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&password, "password", "p", "", "password for the new user")
}
