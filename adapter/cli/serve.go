package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/todolist/adapter/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTML and JSON API server",
	Long: `Start the HTTP server with the HTML pages and the JSON API.

The server stops gracefully on SIGINT or SIGTERM, waiting up to
SHUTDOWN_TIMEOUT for in-flight requests.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Container == nil {
			return ErrNotInitialized
		}
		cfg := app.Config

		srvCfg := api.DefaultServerConfig()
		srvCfg.Addr = cfg.HTTPAddr
		if serveAddr != "" {
			srvCfg.Addr = serveAddr
		}
		srvCfg.SecureCookies = cfg.IsProduction()

		server, err := api.NewServer(srvCfg, app.Tasks, app.Container.Authenticator, app.Container.DBConn.Ping, Logger())
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		wait := gfshutdown.GracefulShutdown(
			context.Background(),
			cfg.ShutdownTimeout,
			map[string]gfshutdown.Operation{
				"http-server": server.Shutdown,
			},
		)

		select {
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		case code := <-wait:
			if code != 0 {
				return fmt.Errorf("shutdown finished with exit code %d", code)
			}
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
