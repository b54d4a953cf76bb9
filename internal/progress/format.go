// ABOUTME: Plain-text renderings of a week's sessions and improvements.
// ABOUTME: Output feeds chat message composers and dashboard tiles.
package progress

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/trainerlog/internal/models"
)

// NoDataMessage is rendered when a client has no sessions in the window.
const NoDataMessage = "No recent workout sessions"

// promptExerciseLimit caps exercise names per session line; message
// composers downstream work within a length budget.
const promptExerciseLimit = 3

// FormatForPrompt renders a multi-line summary: a header with the session
// count and window, then one line per session.
func FormatForPrompt(total int, window WeekWindow, sessions []models.Session) string {
	if total == 0 {
		return NoDataMessage
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s from %s to %s:",
		total, plural(total, "session", "sessions"),
		models.FormatDate(window.Start), models.FormatDate(window.End))

	for _, s := range sessions {
		names := s.ExerciseNames()
		if len(names) > promptExerciseLimit {
			names = names[:promptExerciseLimit]
		}
		name := s.Name
		if name == "" {
			name = "Workout"
		}
		fmt.Fprintf(&sb, "\n- %s: %s", models.FormatDate(s.Date), name)
		if len(names) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(names, ", "))
		}
	}

	return sb.String()
}

// FormatForDashboard renders a single line with session and exercise counts.
func FormatForDashboard(total int, window WeekWindow, sessions []models.Session) string {
	if total == 0 {
		return NoDataMessage
	}

	exercises := 0
	for _, s := range sessions {
		exercises += len(s.Exercises)
	}

	return fmt.Sprintf("%d %s, %d %s logged (%s)",
		total, plural(total, "session", "sessions"),
		exercises, plural(exercises, "exercise", "exercises"),
		window)
}

// FormatImprovements renders one line per improvement, e.g.
// "Bench Press: +5 kg (60 → 65)". An empty input renders as "".
func FormatImprovements(improvements []Improvement) string {
	lines := make([]string, 0, len(improvements))
	for _, imp := range improvements {
		unit := "kg"
		if imp.Metric == MetricReps {
			unit = "reps"
		}
		lines = append(lines, fmt.Sprintf("%s: +%s %s (%s → %s)",
			imp.ExerciseName, number(imp.Delta), unit, number(imp.From), number(imp.To)))
	}
	return strings.Join(lines, "\n")
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
