package task

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Long: `Display detailed information about a specific task.

Examples:
  todolist task show 42`,
	Aliases: []string{"get", "view"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := currentApp()
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		t, err := app.Tasks.GetByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		printTask(cmd.OutOrStdout(), t, time.Now())
		return nil
	},
}
