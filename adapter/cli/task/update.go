package task

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/todolist/internal/productivity/application/services"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
)

var (
	newTitle       string
	newDescription string
	newPriority    string
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Long: `Change the title, description or priority of a task. The deadline
is kept. The task becomes owned by the acting user.

Examples:
  todolist task update 42 --title "Buy groceries and milk"
  todolist task update 42 -p low`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, principal, err := currentApp()
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var changes services.TaskChanges
		flags := cmd.Flags()
		if flags.Changed("title") {
			changes.Title = &newTitle
		}
		if flags.Changed("description") {
			changes.Description = &newDescription
		}
		if flags.Changed("priority") {
			p, err := value_objects.ParsePriority(newPriority)
			if err != nil {
				return err
			}
			changes.Priority = &p
		}
		if changes.Title == nil && changes.Description == nil && changes.Priority == nil {
			return errors.New("nothing to update: pass --title, --description or --priority")
		}

		saved, err := app.Tasks.Update(cmd.Context(), principal, id, changes)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task updated: %d\n", saved.ID())
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&newTitle, "title", "t", "", "new title")
	updateCmd.Flags().StringVarP(&newDescription, "description", "d", "", "new description")
	updateCmd.Flags().StringVarP(&newPriority, "priority", "p", "", "new priority (low, medium, high)")
}
