// ABOUTME: Typed decoding of the serialized exercises payload stored per session.
// ABOUTME: Any schema violation maps to ErrMalformedSessionData for the caller to recover.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrMalformedSessionData is returned when a session's exercise payload cannot be decoded.
var ErrMalformedSessionData = errors.New("malformed session data")

type rawExercise struct {
	Name *string  `json:"name"`
	Sets []rawSet `json:"sets"`
}

type rawSet struct {
	Reps   *json.Number `json:"reps"`
	Weight *json.Number `json:"weight"`
}

// DecodeExercises parses an exercises_json payload:
//
//	[{"name": "Squat", "sets": [{"reps": 5, "weight": 100}]}]
//
// An empty or null payload is an empty list. Missing reps or weight mean 0.
// A missing or blank exercise name, a non-integral or negative rep count,
// a negative weight, or invalid JSON yields ErrMalformedSessionData.
func DecodeExercises(payload string) ([]ExerciseEntry, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	dec.UseNumber()

	var raw []rawExercise
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSessionData, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after exercises array", ErrMalformedSessionData)
	}

	entries := make([]ExerciseEntry, 0, len(raw))
	for i, re := range raw {
		if re.Name == nil || strings.TrimSpace(*re.Name) == "" {
			return nil, fmt.Errorf("%w: exercise %d has no name", ErrMalformedSessionData, i)
		}
		entry := ExerciseEntry{Name: *re.Name, Sets: make([]SetEntry, 0, len(re.Sets))}
		for j, rs := range re.Sets {
			set, err := decodeSet(rs)
			if err != nil {
				return nil, fmt.Errorf("%w: %s set %d: %v", ErrMalformedSessionData, entry.Name, j, err)
			}
			entry.Sets = append(entry.Sets, set)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func decodeSet(rs rawSet) (SetEntry, error) {
	var set SetEntry
	if rs.Reps != nil {
		f, err := rs.Reps.Float64()
		if err != nil {
			return SetEntry{}, fmt.Errorf("reps %q is not a number", rs.Reps.String())
		}
		if f < 0 || f != math.Trunc(f) {
			return SetEntry{}, fmt.Errorf("reps %q is not a whole non-negative number", rs.Reps.String())
		}
		set.Reps = int(f)
	}
	if rs.Weight != nil {
		f, err := rs.Weight.Float64()
		if err != nil {
			return SetEntry{}, fmt.Errorf("weight %q is not a number", rs.Weight.String())
		}
		if f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			return SetEntry{}, fmt.Errorf("weight %q is out of range", rs.Weight.String())
		}
		set.Weight = f
	}
	return set, nil
}

// EncodeExercises serializes exercises into the stored payload format.
func EncodeExercises(exercises []ExerciseEntry) (string, error) {
	if exercises == nil {
		exercises = []ExerciseEntry{}
	}
	data, err := json.Marshal(exercises)
	if err != nil {
		return "", fmt.Errorf("marshal exercises: %w", err)
	}
	return string(data), nil
}
