package mcp

import "github.com/spf13/cobra"

var addr string

// Cmd starts the MCP server.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the todolist MCP server",
	Long: `Start the MCP server exposing task tools to assistants.

Tools act as MCP_USERNAME. Requests must carry MCP_AUTH_TOKEN as a
bearer token when it is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to MCP_ADDR)")
}
