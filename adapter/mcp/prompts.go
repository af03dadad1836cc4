package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common to-do workflows.
func RegisterPrompts(srv *mcp.Server) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("task_triage").
		Description("Review open tasks, adjust priorities and clear out what is done.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Task triage",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me triage my to-do list. Please:

1. Read my tasks from the todolist://tasks resource
2. Point out tasks whose deadline is within the next three days
3. Suggest a priority (LOW, MEDIUM or HIGH) for each task whose current one looks wrong

Ask before changing anything. Use task.update to change priorities and
task.delete for tasks I confirm are finished.`,
						},
					},
				},
			}, nil
		})

	return nil
}
