// ABOUTME: Tests for weekly exercise summaries and improvement detection.
// ABOUTME: Covers the best-session rep rule, ties, and the no-baseline rule.
package progress_test

import (
	"testing"

	"github.com/harperreed/trainerlog/internal/models"
	"github.com/harperreed/trainerlog/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func set(reps int, weight float64) models.SetEntry {
	return models.SetEntry{Reps: reps, Weight: weight}
}

func TestSummarizeWeek(t *testing.T) {
	sessions := []models.Session{
		*models.NewSession("jane_doe", "Push", date(t, "2025-05-19")).
			WithExercise("Bench Press", set(10, 60), set(8, 62.5)).
			WithExercise("Dips", set(12, 0)),
		*models.NewSession("jane_doe", "Push 2", date(t, "2025-05-22")).
			WithExercise("Bench Press", set(6, 65)),
	}

	summaries := progress.SummarizeWeek(sessions)
	require.Len(t, summaries, 2)

	bench := summaries["Bench Press"]
	assert.Equal(t, "Bench Press", bench.ExerciseName)
	assert.Equal(t, 65.0, bench.MaxWeight)
	assert.Equal(t, 18, bench.TotalReps)
	assert.Equal(t, 2, bench.SessionCount)

	dips := summaries["Dips"]
	assert.Equal(t, 0.0, dips.MaxWeight)
	assert.Equal(t, 12, dips.TotalReps)
	assert.Equal(t, 1, dips.SessionCount)
}

// Two sessions with 30 and 45 reps keep the best single session, not 75.
func TestSummarizeWeek_TotalRepsIsBestSession(t *testing.T) {
	sessions := []models.Session{
		*models.NewSession("jane_doe", "Legs", date(t, "2025-05-19")).
			WithExercise("Squat", set(10, 80), set(10, 80), set(10, 80)),
		*models.NewSession("jane_doe", "Legs", date(t, "2025-05-23")).
			WithExercise("Squat", set(15, 70), set(15, 70), set(15, 70)),
	}

	squat := progress.SummarizeWeek(sessions)["Squat"]
	assert.Equal(t, 45, squat.TotalReps)
	assert.NotEqual(t, 75, squat.TotalReps)
	assert.Equal(t, 80.0, squat.MaxWeight)
	assert.Equal(t, 2, squat.SessionCount)
}

func TestSummarizeWeek_MergesRepeatedEntriesWithinSession(t *testing.T) {
	sessions := []models.Session{
		*models.NewSession("jane_doe", "Upper", date(t, "2025-05-19")).
			WithExercise("Row", set(10, 40)).
			WithExercise("Curl", set(12, 10)).
			WithExercise("Row", set(8, 45)),
	}

	row := progress.SummarizeWeek(sessions)["Row"]
	assert.Equal(t, 18, row.TotalReps)
	assert.Equal(t, 45.0, row.MaxWeight)
	assert.Equal(t, 1, row.SessionCount)
}

func TestSummarizeWeek_SkipsEntriesWithoutSets(t *testing.T) {
	sessions := []models.Session{
		*models.NewSession("jane_doe", "Core", date(t, "2025-05-19")).
			WithExercise("Plank").
			WithExercise("Crunch", set(20, 0)),
	}

	summaries := progress.SummarizeWeek(sessions)
	assert.NotContains(t, summaries, "Plank")
	assert.Contains(t, summaries, "Crunch")
}

func TestSummarizeWeek_NamesAreLiteral(t *testing.T) {
	sessions := []models.Session{
		*models.NewSession("jane_doe", "Push", date(t, "2025-05-19")).
			WithExercise("Bench Press", set(10, 60)).
			WithExercise("Barbell Bench Press", set(10, 70)),
	}

	summaries := progress.SummarizeWeek(sessions)
	assert.Len(t, summaries, 2)
	assert.Equal(t, 60.0, summaries["Bench Press"].MaxWeight)
}

func TestSummarizeWeek_MalformedSessionContributesNothing(t *testing.T) {
	valid := []models.Session{
		*models.NewSession("jane_doe", "Legs", date(t, "2025-05-20")).
			WithExercise("Squat", set(5, 100)),
	}
	malformed := models.NewSession("jane_doe", "Legs", date(t, "2025-05-21"))
	malformed.Malformed = true

	withMalformed := append([]models.Session{*malformed}, valid...)

	assert.Equal(t, progress.SummarizeWeek(valid), progress.SummarizeWeek(withMalformed))
	assert.Len(t, progress.SummarizeWeek(withMalformed), 1)
}

func TestSummarizeWeek_Empty(t *testing.T) {
	summaries := progress.SummarizeWeek(nil)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestCompareWeeks_WeightOnly(t *testing.T) {
	previous := map[string]progress.ExerciseWeekSummary{
		"BenchPress": {ExerciseName: "BenchPress", MaxWeight: 60, TotalReps: 24, SessionCount: 1},
	}
	current := map[string]progress.ExerciseWeekSummary{
		"BenchPress": {ExerciseName: "BenchPress", MaxWeight: 65, TotalReps: 20, SessionCount: 1},
	}

	got := progress.CompareWeeks(current, previous)
	require.Len(t, got, 1)
	assert.Equal(t, progress.Improvement{
		ExerciseName: "BenchPress",
		Metric:       progress.MetricWeight,
		Delta:        5,
		From:         60,
		To:           65,
	}, got[0])
}

func TestCompareWeeks(t *testing.T) {
	testCases := []struct {
		name     string
		current  map[string]progress.ExerciseWeekSummary
		previous map[string]progress.ExerciseWeekSummary
		expected []progress.Improvement
	}{
		{
			name:     "BothEmpty",
			expected: []progress.Improvement{},
		},
		{
			name: "Tie",
			current: map[string]progress.ExerciseWeekSummary{
				"Squat": {MaxWeight: 100, TotalReps: 15},
			},
			previous: map[string]progress.ExerciseWeekSummary{
				"Squat": {MaxWeight: 100, TotalReps: 15},
			},
			expected: []progress.Improvement{},
		},
		{
			name: "Regression",
			current: map[string]progress.ExerciseWeekSummary{
				"Squat": {MaxWeight: 90, TotalReps: 10},
			},
			previous: map[string]progress.ExerciseWeekSummary{
				"Squat": {MaxWeight: 100, TotalReps: 15},
			},
			expected: []progress.Improvement{},
		},
		{
			name: "NoBaseline",
			current: map[string]progress.ExerciseWeekSummary{
				"Deadlift": {MaxWeight: 140, TotalReps: 5},
			},
			previous: map[string]progress.ExerciseWeekSummary{
				"Squat": {MaxWeight: 100, TotalReps: 15},
			},
			expected: []progress.Improvement{},
		},
		{
			name: "BothMetricsSortedByName",
			current: map[string]progress.ExerciseWeekSummary{
				"Squat": {MaxWeight: 105, TotalReps: 20},
				"Curl":  {MaxWeight: 12, TotalReps: 30},
			},
			previous: map[string]progress.ExerciseWeekSummary{
				"Squat": {MaxWeight: 100, TotalReps: 15},
				"Curl":  {MaxWeight: 12, TotalReps: 24},
			},
			expected: []progress.Improvement{
				{ExerciseName: "Curl", Metric: progress.MetricReps, Delta: 6, From: 24, To: 30},
				{ExerciseName: "Squat", Metric: progress.MetricWeight, Delta: 5, From: 100, To: 105},
				{ExerciseName: "Squat", Metric: progress.MetricReps, Delta: 5, From: 15, To: 20},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := progress.CompareWeeks(tc.current, tc.previous)
			assert.Equal(t, tc.expected, got)
		})
	}
}
