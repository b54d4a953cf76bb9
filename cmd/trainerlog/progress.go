// ABOUTME: CLI commands for weekly progress reports and check-in summaries.
// ABOUTME: Compares the current Monday-Sunday week with the previous one.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/trainerlog/internal/models"
	"github.com/harperreed/trainerlog/internal/progress"
	"github.com/spf13/cobra"
)

var (
	reportAlias   string
	reportToday   string
	reportJSON    bool
	summaryFormat string
)

var progressCmd = &cobra.Command{
	Use:     "progress <client>",
	Aliases: []string{"p"},
	Short:   "Show week-over-week improvements for a client",
	Long: `Compare a client's current week with the previous week.

For every exercise logged in both weeks, trainerlog reports:

  weight   the heaviest set went up
  reps     the best single session's total reps went up

Exercises new this week have no baseline and are not reported. Drops and
ties are never reported.

EXAMPLES:

  trainerlog progress jane_doe
  trainerlog progress jane_doe --alias janelifts
  trainerlog progress jane_doe --today 2025-05-25
  trainerlog progress jane_doe --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := buildReport(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if reportJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printReport(out, report)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <client>",
	Short: "Render this week's sessions as check-in text",
	Long: `Render a client's current week as text for a check-in message.

FORMATS:

  prompt      One line per session with up to three exercise names (default)
  dashboard   A single line with session and exercise counts

With no sessions this week, both formats print "No recent workout sessions".

EXAMPLES:

  trainerlog summary jane_doe
  trainerlog summary jane_doe --format dashboard`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if summaryFormat != "prompt" && summaryFormat != "dashboard" {
			return fmt.Errorf("unknown format: %s (use prompt or dashboard)", summaryFormat)
		}

		report, err := buildReport(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		text := report.Prompt()
		if summaryFormat == "dashboard" {
			text = report.Dashboard()
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func buildReport(ctx context.Context, client string) (*progress.Report, error) {
	id := models.NewClientIdentity(client, reportAlias)
	if id.IsZero() {
		return nil, fmt.Errorf("client is required")
	}

	opts := []progress.Option{progress.WithLogger(logger)}
	if reportToday != "" {
		today, err := parseDateFlag("today", reportToday, models.DateOf(time.Now()))
		if err != nil {
			return nil, err
		}
		opts = append(opts, progress.WithToday(today))
	}

	reader, err := openReader(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	report, err := progress.NewService(reader, opts...).WeeklyReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return report, nil
}

func printReport(out io.Writer, r *progress.Report) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Fprintln(out, r.Client)
	fmt.Fprintf(out, "This week:  %s  %s\n", r.CurrentWeek, faint.Sprint(sessionCount(len(r.CurrentSessions))))
	fmt.Fprintf(out, "Last week:  %s  %s\n", r.PreviousWeek, faint.Sprint(sessionCount(len(r.PreviousSessions))))
	if len(r.DistinctWorkouts) > 0 {
		fmt.Fprintf(out, "Workouts:   %s\n", strings.Join(r.DistinctWorkouts, ", "))
	}
	fmt.Fprintln(out)

	if len(r.Improvements) == 0 {
		faint.Fprintln(out, "No improvements over last week.")
	} else {
		bold.Fprintln(out, "Improvements:")
		for _, line := range strings.Split(progress.FormatImprovements(r.Improvements), "\n") {
			green.Fprintf(out, "  ✓ %s\n", line)
		}
	}

	if r.MalformedSessions > 0 {
		yellow.Fprintf(out, "\n⚠ %d session(s) had unreadable exercise data and were counted without exercises\n", r.MalformedSessions)
	}
}

func sessionCount(n int) string {
	if n == 1 {
		return "(1 session)"
	}
	return fmt.Sprintf("(%d sessions)", n)
}

func init() {
	for _, c := range []*cobra.Command{progressCmd, summaryCmd} {
		c.Flags().StringVarP(&reportAlias, "alias", "a", "", "IG handle the client may also be logged under")
		c.Flags().StringVar(&reportToday, "today", "", "reference date (YYYY-MM-DD, default: today)")
	}
	progressCmd.Flags().BoolVar(&reportJSON, "json", false, "print the full report as JSON")
	summaryCmd.Flags().StringVarP(&summaryFormat, "format", "f", "prompt", "output format: prompt or dashboard")

	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(summaryCmd)
}
