package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/todolist/adapter/cli"
	"github.com/felixgeelhaar/todolist/adapter/cli/mcp"
	"github.com/felixgeelhaar/todolist/adapter/cli/task"
	"github.com/felixgeelhaar/todolist/adapter/cli/user"
	"github.com/felixgeelhaar/todolist/internal/app"
	"github.com/felixgeelhaar/todolist/pkg/config"
	"github.com/felixgeelhaar/todolist/pkg/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	version := cfg.Version
	if version == "dev" {
		version = cli.Version
	}
	logger := observability.NewLogger(observability.LogConfigFor(cfg.LogLevel, cfg.LogFormat, version))
	slog.SetDefault(logger)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			return 1
		}
		// Commands that need the database report ErrNotInitialized.
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer container.Close()
		cli.SetApp(cli.NewApp(container))
	}

	cli.AddCommand(task.Cmd)
	cli.AddCommand(user.Cmd)
	cli.AddCommand(mcp.Cmd)

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
