// ABOUTME: Root Cobra command for trainerlog CLI.
// ABOUTME: Loads configuration and the logger via PersistentPreRunE.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/trainerlog/internal/config"
	"github.com/harperreed/trainerlog/internal/logging"
	"github.com/harperreed/trainerlog/internal/models"
	"github.com/harperreed/trainerlog/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dbPath   string
	logLevel string

	cfg          *config.Config
	logger       *logrus.Logger
	queryTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "trainerlog",
	Short: "Weekly workout progress for coaching clients",
	Long: `Trainerlog reads a client's logged workout sessions and compares this
week against last week, exercise by exercise.

WEEKS:

  Weeks run Monday through Sunday. "This week" is the week containing
  today (or --today); "last week" is the seven days before it.

QUICK START:

  $ trainerlog progress jane_doe                     # Improvements vs last week
  $ trainerlog progress jane_doe --alias janelifts   # Also match the IG handle
  $ trainerlog summary jane_doe                      # Check-in text for a message
  $ trainerlog summary jane_doe --format dashboard   # One-line summary
  $ trainerlog sessions jane_doe --from 2025-05-01   # Raw session list
  $ trainerlog clients                               # Who is in the log

SERVING:

  $ trainerlog mcp      # MCP server over stdio
  $ trainerlog serve    # Read-only HTTP API

DATA:

  Sessions are read from ~/.local/share/trainerlog/sessions.db unless --db,
  TRAINERLOG_DB_PATH, or db_path in ~/.config/trainerlog/config.json says
  otherwise. Reports never write to the store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dbPath != "" {
			loaded.DBPath = dbPath
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(logging.Params{
			LogFileName: loaded.GetLogFile(),
			LogLevel:    loaded.GetLogLevel(),
			Output:      cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}

		queryTimeout, _ = loaded.GetQueryTimeout()
		cfg = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// openReader opens the session store read-only.
func openReader(ctx context.Context) (*storage.DB, error) {
	return cfg.OpenReader(ctx, logger)
}

// openStore opens the session store read-write, creating it if needed.
func openStore() (*storage.DB, error) {
	return cfg.OpenStore(logger)
}

// parseDateFlag parses an optional YYYY-MM-DD flag, returning fallback when empty.
func parseDateFlag(name, value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "session database path (default: ~/.local/share/trainerlog/sessions.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}
