package task

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
)

var (
	showAll        bool
	query          string
	filterPriority string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List your tasks, optionally narrowed by a search query.

--all lists every user's tasks. --priority lists tasks of that priority
across all users.

Examples:
  todolist task list
  todolist task list -q groceries
  todolist task list --priority high
  todolist task list --all`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, principal, err := currentApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var tasks []*task.Task
		switch {
		case filterPriority != "":
			p, err := value_objects.ParsePriority(filterPriority)
			if err != nil {
				return err
			}
			tasks, err = app.Tasks.FilterByPriority(ctx, p)
			if err != nil {
				return fmt.Errorf("failed to filter tasks: %w", err)
			}
		case showAll:
			tasks, err = app.Tasks.ListAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}
		default:
			tasks, err = app.Tasks.Search(ctx, principal, query)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}
		}

		printTasks(cmd.OutOrStdout(), tasks, time.Now())
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "list tasks of all users")
	listCmd.Flags().StringVarP(&query, "query", "q", "", "only tasks matching this text")
	listCmd.Flags().StringVarP(&filterPriority, "priority", "p", "", "only tasks with this priority (low, medium, high)")
	listCmd.MarkFlagsMutuallyExclusive("all", "priority")
}
