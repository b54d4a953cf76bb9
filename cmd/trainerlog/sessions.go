// ABOUTME: CLI commands for listing sessions and clients.
// ABOUTME: Sessions are shown most recent first with up to three exercises.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/trainerlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	sessionsAlias string
	sessionsFrom  string
	sessionsTo    string
)

var sessionsCmd = &cobra.Command{
	Use:     "sessions <client>",
	Aliases: []string{"ls"},
	Short:   "List a client's workout sessions",
	Long: `List a client's logged sessions in a date range, most recent first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  WORKOUT  (EXERCISES)

  The ID is an 8-character prefix you can use with delete.

EXAMPLES:

  trainerlog sessions jane_doe                          # Last 28 days
  trainerlog sessions jane_doe --from 2025-05-01
  trainerlog sessions jane_doe -a janelifts --to 2025-05-31`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := models.NewClientIdentity(args[0], sessionsAlias)

		to, err := parseDateFlag("to", sessionsTo, models.DateOf(time.Now()))
		if err != nil {
			return err
		}
		from, err := parseDateFlag("from", sessionsFrom, to.AddDate(0, 0, -28))
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

		sessions, err := reader.FetchSessions(ctx, id, from, to)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}

		faint := color.New(color.Faint)
		yellow := color.New(color.FgYellow)
		for _, s := range sessions {
			detail := faint.Sprintf("(%s)", summarizeExercises(s.ExerciseNames()))
			if s.Malformed {
				detail = yellow.Sprint("(unreadable exercise data)")
			}
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprint(shortID(s.ID)),
				models.FormatDate(s.Date),
				padRight(s.Name, 20),
				detail)
		}
		return nil
	},
}

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List clients found in the session log",
	Long: `List every client key and IG handle in the session log with
session counts, most recently active first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := openReader(cmd.Context())
		if err != nil {
			return err
		}
		defer reader.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
		defer cancel()

		clients, err := reader.ListClients(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(clients) == 0 {
			fmt.Fprintln(out, "No clients found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, c := range clients {
			name := models.NewClientIdentity(c.ClientKey, c.IGUsername).String()
			fmt.Fprintf(out, "%s %4d  %s\n",
				padRight(name, 30),
				c.SessionCount,
				faint.Sprint("last "+models.FormatDate(c.LastSession)))
		}
		return nil
	},
}

func summarizeExercises(names []string) string {
	if len(names) == 0 {
		return "no exercises"
	}
	if len(names) > 3 {
		return strings.Join(names[:3], ", ") + fmt.Sprintf(" +%d", len(names)-3)
	}
	return strings.Join(names, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	sessionsCmd.Flags().StringVarP(&sessionsAlias, "alias", "a", "", "IG handle the client may also be logged under")
	sessionsCmd.Flags().StringVar(&sessionsFrom, "from", "", "start date (YYYY-MM-DD, default: 28 days before --to)")
	sessionsCmd.Flags().StringVar(&sessionsTo, "to", "", "end date (YYYY-MM-DD, default: today)")

	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(clientsCmd)
}
