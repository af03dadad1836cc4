package user

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/todolist/adapter/cli"
)

var password string

// Cmd is the user command group
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long: `Add, list, and delete the users that can sign in to todolist.

Deleting a user deletes every task they own.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(passwdCmd)
}

func currentApp() (*cli.App, error) {
	app := cli.GetApp()
	if app == nil || app.Users == nil {
		return nil, cli.ErrNotInitialized
	}
	return app, nil
}

// readPassword returns --password when given, else the first line of in.
func readPassword(cmd *cobra.Command, in io.Reader) (string, error) {
	if cmd.Flags().Changed("password") {
		return password, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr())
	return strings.TrimRight(line, "\r\n"), nil
}
