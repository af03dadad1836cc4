package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/mcp-go/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/todolist/pkg/config"
)

func TestServe_RequiresDependencies(t *testing.T) {
	ctx := context.Background()
	assert.EqualError(t, Serve(ctx, nil, nil, nil), "config is required")
	assert.EqualError(t, Serve(ctx, &config.Config{}, nil, nil), "task service is required")
}

func TestMCPLogger_ForwardsFields(t *testing.T) {
	var buf bytes.Buffer
	l := mcpLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	l.Info("tool called", middleware.Field{Key: "tool", Value: "task.list"})
	l.Warn("slow tool", middleware.Field{Key: "ms", Value: 1200})

	out := buf.String()
	assert.Contains(t, out, "tool=task.list")
	assert.Contains(t, out, "ms=1200")
	assert.Empty(t, fieldsToArgs(nil))
}
