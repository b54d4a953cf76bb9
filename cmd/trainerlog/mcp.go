// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server exposing weekly progress tools.
package main

import (
	"os/signal"
	"syscall"

	"github.com/harperreed/trainerlog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and only reads the session store.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "trainerlog": {
        "command": "trainerlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  weekly_progress   Current vs previous week with improvements
  checkin_summary   Check-in text (prompt) or one-line dashboard summary
  list_sessions     Sessions in a date range

AVAILABLE RESOURCES:

  trainerlog://clients   Clients in the session log`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reader, err := openReader(ctx)
		if err != nil {
			return err
		}
		defer reader.Close()

		server, err := mcp.NewServer(reader, mcp.WithLogger(logger), mcp.WithQueryTimeout(queryTimeout))
		if err != nil {
			return err
		}

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
