// ABOUTME: CLI commands for exporting, importing, and deleting sessions.
// ABOUTME: Import and delete write to the store and are meant for local fixtures.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/trainerlog/internal/models"
	"github.com/harperreed/trainerlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportAlias  string
	exportFrom   string
	exportTo     string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <client> <format>",
	Short: "Export a client's sessions",
	Long: `Export a client's sessions in various formats.

FORMATS:

  json       Full JSON export (suitable for backup and import)
  yaml       YAML export (human-readable, importable)
  markdown   Markdown table (for sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --from, --to   Date range (YYYY-MM-DD, default: the last 28 days)

EXAMPLES:

  trainerlog export jane_doe json -o jane.json
  trainerlog export jane_doe yaml --from 2025-01-01
  trainerlog export jane_doe markdown -a janelifts`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		id := models.NewClientIdentity(args[0], exportAlias)
		format := args[1]

		to, err := parseDateFlag("to", exportTo, models.DateOf(time.Now()))
		if err != nil {
			return err
		}
		from, err := parseDateFlag("from", exportFrom, to.AddDate(0, 0, -28))
		if err != nil {
			return err
		}

		reader, err := openReader(cmd.Context())
		if err != nil {
			return err
		}
		defer reader.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
		defer cancel()

		export, err := reader.ExportSessions(ctx, id, from, to)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		data, err := export.Encode(format)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Exported %d sessions to %s", len(export.Sessions), exportOutput))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import sessions from a JSON or YAML export",
	Long: `Import sessions from a file produced by 'trainerlog export'.

The format is taken from the file extension (.json, .yaml, .yml) unless
--format is given. Sessions without an ID get a new one. The import is all
or nothing: if any session is invalid, none are written.

This writes to the session store. In production the store is filled by a
separate ingestion process; use import for local fixtures and restores.

EXAMPLES:

  trainerlog import jane.json
  trainerlog import fixtures.txt --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		format := importFormat
		if format == "" {
			format = formatFromExtension(filename)
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		export, err := storage.DecodeExport(data, format)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.ImportData(cmd.Context(), export)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Imported %d sessions from %s", n, filename))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session by ID or ID prefix",
	Long: `Delete a session by its ID or a unique ID prefix.

The ID prefix is shown in the first column of 'trainerlog sessions'.

CAUTION:

  This permanently deletes the session. There is no undo.
  If the prefix matches multiple sessions, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteSession(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Deleted session %s", args[0]))
		return nil
	},
}

func formatFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return storage.FormatYAML
	default:
		return storage.FormatJSON
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportAlias, "alias", "a", "", "IG handle the client may also be logged under")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "start date (YYYY-MM-DD, default: 28 days before --to)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "end date (YYYY-MM-DD, default: today)")
	importCmd.Flags().StringVar(&importFormat, "format", "", "input format: json or yaml (default: from extension)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(deleteCmd)
}
