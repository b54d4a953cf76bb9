// ABOUTME: Session, ExerciseEntry and SetEntry models for logged training sessions.
// ABOUTME: A session is one workout on a calendar date with its exercises and sets.
package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session represents one completed training session.
type Session struct {
	ID         string          `json:"session_id" yaml:"session_id"`
	ClientKey  string          `json:"client_name_key" yaml:"client_name_key"`
	IGUsername string          `json:"ig_username,omitempty" yaml:"ig_username,omitempty"`
	Date       time.Time       `json:"workout_date" yaml:"workout_date"`
	Name       string          `json:"workout_name" yaml:"workout_name"`
	Exercises  []ExerciseEntry `json:"exercises" yaml:"exercises"`

	// Malformed is set by the store when the serialized exercise payload
	// could not be decoded and Exercises was left empty.
	Malformed bool `json:"malformed,omitempty" yaml:"malformed,omitempty"`
}

// ExerciseEntry is one exercise performed within a session.
type ExerciseEntry struct {
	Name string     `json:"name" yaml:"name"`
	Sets []SetEntry `json:"sets" yaml:"sets"`
}

// SetEntry is one set of an exercise.
type SetEntry struct {
	Reps   int     `json:"reps" yaml:"reps"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// NewSession creates a Session with a generated ID for the given client and date.
func NewSession(clientKey, name string, date time.Time) *Session {
	return &Session{
		ID:        uuid.New().String(),
		ClientKey: clientKey,
		Date:      DateOf(date),
		Name:      name,
	}
}

// WithIGUsername sets the alternate identity on the session.
func (s *Session) WithIGUsername(handle string) *Session {
	s.IGUsername = handle
	return s
}

// WithExercise appends an exercise with the given sets.
func (s *Session) WithExercise(name string, sets ...SetEntry) *Session {
	s.Exercises = append(s.Exercises, ExerciseEntry{Name: name, Sets: sets})
	return s
}

// ExerciseNames returns the exercise names in logged order.
func (s *Session) ExerciseNames() []string {
	names := make([]string, 0, len(s.Exercises))
	for _, e := range s.Exercises {
		names = append(names, e.Name)
	}
	return names
}

// TotalReps returns the sum of reps across all sets of the entry.
func (e ExerciseEntry) TotalReps() int {
	total := 0
	for _, set := range e.Sets {
		total += set.Reps
	}
	return total
}

// MaxWeight returns the heaviest set weight of the entry, 0 when there are no sets.
func (e ExerciseEntry) MaxWeight() float64 {
	var heaviest float64
	for i, set := range e.Sets {
		if i == 0 || set.Weight > heaviest {
			heaviest = set.Weight
		}
	}
	return heaviest
}

var trailingNumeral = regexp.MustCompile(`\s+\d+$`)

// NormalizeWorkoutName strips a trailing session numeral so that
// "Core and Arms 2" and "Core and Arms" group together.
// Exercise names are never normalized.
func NormalizeWorkoutName(name string) string {
	return strings.TrimSpace(trailingNumeral.ReplaceAllString(strings.TrimSpace(name), ""))
}

// MarshalJSON renders Date as a YYYY-MM-DD calendar date.
func (s Session) MarshalJSON() ([]byte, error) {
	type alias Session
	return json.Marshal(struct {
		alias
		Date string `json:"workout_date"`
	}{alias: alias(s), Date: FormatDate(s.Date)})
}

// UnmarshalJSON accepts Date as a YYYY-MM-DD calendar date.
func (s *Session) UnmarshalJSON(data []byte) error {
	type alias Session
	aux := struct {
		*alias
		Date string `json:"workout_date"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Date == "" {
		return nil
	}
	d, err := ParseDate(aux.Date)
	if err != nil {
		return fmt.Errorf("workout_date: %w", err)
	}
	s.Date = d
	return nil
}
