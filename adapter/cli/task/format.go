package task

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
)

func printTasks(out io.Writer, tasks []*task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return
	}

	fmt.Fprintf(out, "%-6s %-8s %-12s %-12s %s\n", "ID", "PRIORITY", "DEADLINE", "OWNER", "TITLE")
	for _, t := range tasks {
		fmt.Fprintf(out, "%-6d %-8s %-12s %-12s %s\n",
			t.ID(),
			t.Priority().String(),
			formatDeadline(t, now),
			t.Owner().Username,
			t.Title(),
		)
	}
	fmt.Fprintf(out, "\n%d task(s)\n", len(tasks))
}

func printTask(out io.Writer, t *task.Task, now time.Time) {
	fmt.Fprintf(out, "Task: %d\n", t.ID())
	fmt.Fprintf(out, "  Title:       %s\n", t.Title())
	fmt.Fprintf(out, "  Priority:    %s\n", t.Priority().Label())
	if t.Description() != "" {
		fmt.Fprintf(out, "  Description: %s\n", t.Description())
	}
	if t.Deadline() != nil {
		fmt.Fprintf(out, "  Deadline:    %s (due in %d days)\n", t.Deadline().String(), t.DaysUntilDeadline(now))
	}
	fmt.Fprintf(out, "  Owner:       %s\n", t.Owner().Username)
	fmt.Fprintf(out, "  Created:     %s\n", t.CreatedAt().Local().Format("2006-01-02 15:04"))
}

func formatDeadline(t *task.Task, now time.Time) string {
	if t.Deadline() == nil {
		return "-"
	}
	return t.Deadline().String() + " (" + strconv.Itoa(t.DaysUntilDeadline(now)) + "d)"
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task ID %q", arg)
	}
	return id, nil
}
