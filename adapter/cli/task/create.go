package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
)

var (
	priority    string
	description string
	deadline    string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Long: `Create a new task owned by the acting user.

Examples:
  todolist task create "Buy groceries"
  todolist task create "File taxes" -p high --deadline 2026-04-15
  todolist task create "Call mom" --description "Sunday afternoon"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, principal, err := currentApp()
		if err != nil {
			return err
		}

		p, err := value_objects.ParsePriority(priority)
		if err != nil {
			return err
		}
		d, err := value_objects.ParseOptionalDeadline(deadline)
		if err != nil {
			return fmt.Errorf("invalid deadline (use YYYY-MM-DD): %w", err)
		}

		t := task.NewTask(args[0], description)
		if err := t.SetPriority(p); err != nil {
			return err
		}
		t.SetDeadline(d)

		saved, err := app.Tasks.Save(cmd.Context(), principal, t)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task created: %d\n", saved.ID())
		fmt.Fprintf(out, "  title: %s\n", saved.Title())
		fmt.Fprintf(out, "  priority: %s\n", saved.Priority().Label())
		if saved.Deadline() != nil {
			fmt.Fprintf(out, "  deadline: %s\n", saved.Deadline().String())
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&priority, "priority", "p", "", "task priority (low, medium, high)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	createCmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
}
