// ABOUTME: CLI command for starting the read-only HTTP API.
// ABOUTME: Serves progress, prompt, dashboard, and session routes per client.
package main

import (
	"os/signal"
	"syscall"

	"github.com/harperreed/trainerlog/internal/api"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start a read-only HTTP API over the session store.

ROUTES:

  GET /health
  GET /api/clients
  GET /api/clients/{client}/progress     JSON weekly report
  GET /api/clients/{client}/prompt       check-in text
  GET /api/clients/{client}/dashboard    one-line summary
  GET /api/clients/{client}/sessions     sessions (?from=&to=)

  All client routes accept ?alias= and the report routes accept ?today=.

EXAMPLES:

  trainerlog serve
  trainerlog serve --addr 127.0.0.1:9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		addr := serveAddr
		if addr == "" {
			addr = cfg.GetHTTPAddr()
		}

		reader, err := openReader(ctx)
		if err != nil {
			return err
		}
		defer reader.Close()

		handler := api.NewHandler(reader, logger, queryTimeout)
		router := api.NewRouter(handler, cfg.AllowedOrigins)

		return api.NewServer(addr, router, logger).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: :8080 or http_addr from config)")
	rootCmd.AddCommand(serveCmd)
}
