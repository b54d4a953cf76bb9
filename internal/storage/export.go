// ABOUTME: Export and import of session logs for backup and local ingestion.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/trainerlog/internal/models"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// ExportData represents the full export format for a client's sessions.
type ExportData struct {
	Version    string           `json:"version" yaml:"version"`
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Tool       string           `json:"tool" yaml:"tool"`
	Client     string           `json:"client,omitempty" yaml:"client,omitempty"`
	Sessions   []models.Session `json:"sessions" yaml:"-"`
}

type yamlExport struct {
	Version    string        `yaml:"version"`
	ExportedAt string        `yaml:"exported_at"`
	Tool       string        `yaml:"tool"`
	Client     string        `yaml:"client,omitempty"`
	Sessions   []yamlSession `yaml:"sessions"`
}

type yamlSession struct {
	ID         string                 `yaml:"session_id,omitempty"`
	ClientKey  string                 `yaml:"client_name_key,omitempty"`
	IGUsername string                 `yaml:"ig_username,omitempty"`
	Date       string                 `yaml:"workout_date"`
	Name       string                 `yaml:"workout_name"`
	Exercises  []models.ExerciseEntry `yaml:"exercises"`
}

// ExportSessions collects a client's sessions within [from, to] for export.
func (d *DB) ExportSessions(ctx context.Context, id models.ClientIdentity, from, to time.Time) (*ExportData, error) {
	sessions, err := d.FetchSessions(ctx, id, from, to)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC(),
		Tool:       "trainerlog",
		Client:     id.String(),
		Sessions:   sessions,
	}, nil
}

// ImportData stores every session of an export.
func (d *DB) ImportData(ctx context.Context, data *ExportData) (int, error) {
	return d.ImportSessions(ctx, data.Sessions)
}

// Encode renders export data in the given format.
func (e *ExportData) Encode(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(e, "", "  ")
	case FormatYAML:
		ye := yamlExport{
			Version:    e.Version,
			ExportedAt: e.ExportedAt.Format(time.RFC3339),
			Tool:       e.Tool,
			Client:     e.Client,
			Sessions:   make([]yamlSession, 0, len(e.Sessions)),
		}
		for _, s := range e.Sessions {
			ye.Sessions = append(ye.Sessions, yamlSession{
				ID:         s.ID,
				ClientKey:  s.ClientKey,
				IGUsername: s.IGUsername,
				Date:       models.FormatDate(s.Date),
				Name:       s.Name,
				Exercises:  s.Exercises,
			})
		}
		return yaml.Marshal(ye)
	case FormatMarkdown:
		return []byte(e.markdown()), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
	}
}

// DecodeExport parses a JSON or YAML export.
func DecodeExport(raw []byte, format string) (*ExportData, error) {
	switch format {
	case FormatJSON:
		var data ExportData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
		return &data, nil
	case FormatYAML:
		var ye yamlExport
		if err := yaml.Unmarshal(raw, &ye); err != nil {
			return nil, fmt.Errorf("unmarshal YAML: %w", err)
		}
		data := &ExportData{
			Version:  ye.Version,
			Tool:     ye.Tool,
			Client:   ye.Client,
			Sessions: make([]models.Session, 0, len(ye.Sessions)),
		}
		if ye.ExportedAt != "" {
			data.ExportedAt, _ = time.Parse(time.RFC3339, ye.ExportedAt)
		}
		for i, ys := range ye.Sessions {
			date, err := models.ParseDate(ys.Date)
			if err != nil {
				return nil, fmt.Errorf("session %d: %w", i, err)
			}
			data.Sessions = append(data.Sessions, models.Session{
				ID:         ys.ID,
				ClientKey:  ys.ClientKey,
				IGUsername: ys.IGUsername,
				Date:       date,
				Name:       ys.Name,
				Exercises:  ys.Exercises,
			})
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown import format: %s (use json or yaml)", format)
	}
}

func (e *ExportData) markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Workout Sessions - %s\n\n", e.Client)
	fmt.Fprintf(&sb, "Generated: %s\n\n", e.ExportedAt.Format(time.RFC3339))

	if len(e.Sessions) == 0 {
		sb.WriteString("No sessions.\n")
		return sb.String()
	}

	sb.WriteString("| Date | Workout | Exercise | Sets |\n")
	sb.WriteString("|------|---------|----------|------|\n")
	for _, s := range e.Sessions {
		if len(s.Exercises) == 0 {
			fmt.Fprintf(&sb, "| %s | %s | | |\n", models.FormatDate(s.Date), s.Name)
			continue
		}
		for _, ex := range s.Exercises {
			sets := make([]string, 0, len(ex.Sets))
			for _, set := range ex.Sets {
				sets = append(sets, fmt.Sprintf("%d×%g", set.Reps, set.Weight))
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				models.FormatDate(s.Date), s.Name, ex.Name, strings.Join(sets, ", "))
		}
	}

	return sb.String()
}
