package task

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/todolist/adapter/cli"
	identity "github.com/felixgeelhaar/todolist/internal/identity/domain"
)

var username string

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long: `Create, list, update, and delete your tasks.

Commands act as --user, or TODOLIST_USER when the flag is omitted.`,
}

func init() {
	Cmd.PersistentFlags().StringVarP(&username, "user", "u", "", "act as this user (defaults to TODOLIST_USER)")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
}

func currentApp() (*cli.App, identity.Principal, error) {
	app := cli.GetApp()
	if app == nil || app.Tasks == nil {
		return nil, identity.Principal{}, cli.ErrNotInitialized
	}
	return app, app.Principal(username), nil
}
