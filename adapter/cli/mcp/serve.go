package mcp

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/todolist/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/todolist/internal/mcp"
)

func runServe(cmd *cobra.Command, args []string) error {
	app := cli.GetApp()
	if app == nil || app.Tasks == nil {
		return cli.ErrNotInitialized
	}

	cfg := *app.Config
	if addr != "" {
		cfg.MCPAddr = addr
	}

	err := mcpinternal.Serve(cmd.Context(), &cfg, app.Tasks, cli.Logger())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
