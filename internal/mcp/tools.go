// ABOUTME: MCP tool implementations for weekly progress.
// ABOUTME: Provides weekly_progress, checkin_summary, and list_sessions.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/harperreed/trainerlog/internal/models"
	"github.com/harperreed/trainerlog/internal/progress"
	"github.com/harperreed/trainerlog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "weekly_progress",
		Description: "Compare a client's current Monday-Sunday week against the previous week and list improvements",
	}, s.handleWeeklyProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "checkin_summary",
		Description: "Render a client's current week as check-in text (prompt) or a one-line dashboard summary",
	}, s.handleCheckinSummary)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List a client's logged workout sessions in a date range, most recent first",
	}, s.handleListSessions)
}

// Tool input/output types

type weeklyProgressInput struct {
	Client string `json:"client" jsonschema:"Client name key, e.g. jane_doe"`
	Alias  string `json:"alias,omitempty" jsonschema:"Instagram handle the client may also be logged under"`
	Today  string `json:"today,omitempty" jsonschema:"Reference date (YYYY-MM-DD), defaults to today"`
}

type windowOutput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type weeklyProgressOutput struct {
	Client            string                         `json:"client"`
	CurrentWeek       windowOutput                   `json:"current_week"`
	PreviousWeek      windowOutput                   `json:"previous_week"`
	CurrentSessions   int                            `json:"current_sessions"`
	PreviousSessions  int                            `json:"previous_sessions"`
	Exercises         []progress.ExerciseWeekSummary `json:"exercises"`
	Improvements      []progress.Improvement         `json:"improvements"`
	MalformedSessions int                            `json:"malformed_sessions"`
	Message           string                         `json:"message"`
}

type checkinSummaryInput struct {
	Client string `json:"client" jsonschema:"Client name key, e.g. jane_doe"`
	Alias  string `json:"alias,omitempty" jsonschema:"Instagram handle the client may also be logged under"`
	Today  string `json:"today,omitempty" jsonschema:"Reference date (YYYY-MM-DD), defaults to today"`
	Format string `json:"format,omitempty" jsonschema:"prompt (multi-line, default) or dashboard (single line)"`
}

type checkinSummaryOutput struct {
	Client   string `json:"client"`
	Format   string `json:"format"`
	Sessions int    `json:"sessions"`
	Text     string `json:"text"`
}

type listSessionsInput struct {
	Client string `json:"client" jsonschema:"Client name key, e.g. jane_doe"`
	Alias  string `json:"alias,omitempty" jsonschema:"Instagram handle the client may also be logged under"`
	From   string `json:"from,omitempty" jsonschema:"Start date (YYYY-MM-DD), defaults to 28 days before to"`
	To     string `json:"to,omitempty" jsonschema:"End date (YYYY-MM-DD), defaults to today"`
}

// Tool handlers

func (s *Server) handleWeeklyProgress(ctx context.Context, req *mcp.CallToolRequest, input weeklyProgressInput) (*mcp.CallToolResult, any, error) {
	report, err := s.report(ctx, input.Client, input.Alias, input.Today)
	if err != nil {
		return toolError(err), nil, nil
	}

	message := progress.FormatImprovements(report.Improvements)
	if message == "" {
		message = "No improvements over the previous week."
	}

	return nil, weeklyProgressOutput{
		Client:            report.Client,
		CurrentWeek:       window(report.CurrentWeek),
		PreviousWeek:      window(report.PreviousWeek),
		CurrentSessions:   len(report.CurrentSessions),
		PreviousSessions:  len(report.PreviousSessions),
		Exercises:         sortedSummaries(report.CurrentSummary),
		Improvements:      report.Improvements,
		MalformedSessions: report.MalformedSessions,
		Message:           message,
	}, nil
}

func (s *Server) handleCheckinSummary(ctx context.Context, req *mcp.CallToolRequest, input checkinSummaryInput) (*mcp.CallToolResult, any, error) {
	if input.Format == "" {
		input.Format = "prompt"
	}
	if input.Format != "prompt" && input.Format != "dashboard" {
		return toolError(fmt.Errorf("unknown format %q (use prompt or dashboard)", input.Format)), nil, nil
	}

	report, err := s.report(ctx, input.Client, input.Alias, input.Today)
	if err != nil {
		return toolError(err), nil, nil
	}

	text := report.Prompt()
	if input.Format == "dashboard" {
		text = report.Dashboard()
	}

	return nil, checkinSummaryOutput{
		Client:   report.Client,
		Format:   input.Format,
		Sessions: len(report.CurrentSessions),
		Text:     text,
	}, nil
}

func (s *Server) handleListSessions(ctx context.Context, req *mcp.CallToolRequest, input listSessionsInput) (*mcp.CallToolResult, any, error) {
	id, err := identity(input.Client, input.Alias)
	if err != nil {
		return toolError(err), nil, nil
	}

	to := models.DateOf(s.now())
	if input.To != "" {
		if to, err = models.ParseDate(input.To); err != nil {
			return toolError(err), nil, nil
		}
	}
	from := to.AddDate(0, 0, -28)
	if input.From != "" {
		if from, err = models.ParseDate(input.From); err != nil {
			return toolError(err), nil, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	sessions, err := s.reader.FetchSessions(ctx, id, from, to)
	if err != nil {
		return toolError(err), nil, nil
	}

	if len(sessions) == 0 {
		return nil, map[string]any{"message": "No sessions found."}, nil
	}

	return nil, map[string]any{
		"client":   id.String(),
		"from":     models.FormatDate(from),
		"to":       models.FormatDate(to),
		"count":    len(sessions),
		"sessions": sessions,
	}, nil
}

func (s *Server) report(ctx context.Context, client, alias, today string) (*progress.Report, error) {
	id, err := identity(client, alias)
	if err != nil {
		return nil, err
	}

	opts := []progress.Option{progress.WithLogger(s.log), progress.WithClock(s.now)}
	if today != "" {
		day, err := models.ParseDate(today)
		if err != nil {
			return nil, err
		}
		opts = append(opts, progress.WithToday(day))
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	return progress.NewService(s.reader, opts...).WeeklyReport(ctx, id)
}

func identity(client, alias string) (models.ClientIdentity, error) {
	id := models.NewClientIdentity(client, alias)
	if id.IsZero() {
		return id, errors.New("client is required")
	}
	return id, nil
}

func toolError(err error) *mcp.CallToolResult {
	text := err.Error()
	if errors.Is(err, storage.ErrStoreUnavailable) {
		text = "Session store unavailable: " + text
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func window(w progress.WeekWindow) windowOutput {
	return windowOutput{Start: models.FormatDate(w.Start), End: models.FormatDate(w.End)}
}

func sortedSummaries(summaries map[string]progress.ExerciseWeekSummary) []progress.ExerciseWeekSummary {
	out := make([]progress.ExerciseWeekSummary, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExerciseName < out[j].ExerciseName })
	return out
}
