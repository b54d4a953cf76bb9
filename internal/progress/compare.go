// ABOUTME: Per-exercise weekly summaries and week-over-week improvement detection.
// ABOUTME: Only improvements are reported; regressions and ties are silent.
package progress

import (
	"sort"

	"github.com/harperreed/trainerlog/internal/models"
)

// Metric names the measure an Improvement refers to.
type Metric string

const (
	MetricWeight Metric = "weight"
	MetricReps   Metric = "reps"
)

// ExerciseWeekSummary aggregates one exercise over a week.
type ExerciseWeekSummary struct {
	ExerciseName string  `json:"exercise_name"`
	MaxWeight    float64 `json:"max_weight"`
	// TotalReps is the best single-session rep total in the week, not the
	// weekly sum. This mirrors how check-ins have always been compared; a
	// true weekly volume metric would sum instead.
	TotalReps    int `json:"total_reps"`
	SessionCount int `json:"session_count"`
}

// Improvement is a positive week-over-week change for one exercise.
type Improvement struct {
	ExerciseName string  `json:"exercise_name"`
	Metric       Metric  `json:"metric"`
	Delta        float64 `json:"delta"`
	From         float64 `json:"from"`
	To           float64 `json:"to"`
}

// SummarizeWeek reduces a week's sessions into per-exercise summaries keyed
// by exact exercise name. Entries without sets are ignored.
func SummarizeWeek(sessions []models.Session) map[string]ExerciseWeekSummary {
	summaries := make(map[string]ExerciseWeekSummary)

	for _, s := range sessions {
		for name, best := range sessionBests(s) {
			sum, seen := summaries[name]
			if !seen {
				sum = ExerciseWeekSummary{ExerciseName: name, MaxWeight: best.maxWeight, TotalReps: best.reps}
			}
			sum.MaxWeight = max(sum.MaxWeight, best.maxWeight)
			sum.TotalReps = max(sum.TotalReps, best.reps)
			sum.SessionCount++
			summaries[name] = sum
		}
	}

	return summaries
}

type sessionBest struct {
	maxWeight float64
	reps      int
}

// sessionBests merges repeated entries of the same exercise within a session
// so that per-session totals and session counts stay per session.
func sessionBests(s models.Session) map[string]sessionBest {
	bests := make(map[string]sessionBest, len(s.Exercises))
	for _, e := range s.Exercises {
		if len(e.Sets) == 0 {
			continue
		}
		b, seen := bests[e.Name]
		if !seen {
			b.maxWeight = e.MaxWeight()
		}
		b.maxWeight = max(b.maxWeight, e.MaxWeight())
		b.reps += e.TotalReps()
		bests[e.Name] = b
	}
	return bests
}

// CompareWeeks reports improvements for exercises present in both weeks.
// Output is ordered by exercise name, weight before reps.
func CompareWeeks(current, previous map[string]ExerciseWeekSummary) []Improvement {
	names := make([]string, 0, len(current))
	for name := range current {
		if _, ok := previous[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	improvements := []Improvement{}
	for _, name := range names {
		cur, prev := current[name], previous[name]

		if cur.MaxWeight > prev.MaxWeight {
			improvements = append(improvements, Improvement{
				ExerciseName: name,
				Metric:       MetricWeight,
				Delta:        cur.MaxWeight - prev.MaxWeight,
				From:         prev.MaxWeight,
				To:           cur.MaxWeight,
			})
		}
		if cur.TotalReps > prev.TotalReps {
			improvements = append(improvements, Improvement{
				ExerciseName: name,
				Metric:       MetricReps,
				Delta:        float64(cur.TotalReps - prev.TotalReps),
				From:         float64(prev.TotalReps),
				To:           float64(cur.TotalReps),
			})
		}
	}

	return improvements
}
