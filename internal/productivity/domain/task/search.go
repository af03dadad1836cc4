package task

import (
	"strconv"
	"strings"
)

// Matches reports whether the task matches a search query: title or
// description contains it case-insensitively, or the decimal id contains it
// verbatim. A blank query matches everything.
func (t *Task) Matches(query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.title), q) ||
		strings.Contains(strings.ToLower(t.description), q) ||
		(t.id != 0 && strings.Contains(strconv.FormatInt(t.id, 10), query))
}

// Filter keeps the tasks that match query, preserving order.
func Filter(tasks []*Task, query string) []*Task {
	if strings.TrimSpace(query) == "" {
		return tasks
	}
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out
}
