package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation bounds for workout definitions.
const (
	MaxNameLen      = 100
	MaxExercises    = 20
	MaxSets         = 20
	MaxReps         = 200
	MaxWeightKg     = 1000
	ShareCodeLength = 6
)

var shareCodeRe = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// ValidationError reports a field whose value is out of bounds. It is
// surfaced to the caller before any write reaches the database.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// ValidateWorkout checks a workout definition against the documented
// bounds and trims the workout and exercise names in place.
func ValidateWorkout(w *Workout) error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return &ValidationError{Field: "name", Msg: "workout name is required"}
	}
	if len(w.Name) > MaxNameLen {
		return &ValidationError{Field: "name", Msg: fmt.Sprintf("must be at most %d characters", MaxNameLen)}
	}
	if len(w.Exercises) == 0 {
		return &ValidationError{Field: "exercises", Msg: "at least one exercise is required"}
	}
	if len(w.Exercises) > MaxExercises {
		return &ValidationError{Field: "exercises", Msg: fmt.Sprintf("at most %d exercises allowed", MaxExercises)}
	}
	for i := range w.Exercises {
		if err := validateExercise(&w.Exercises[i], i); err != nil {
			return err
		}
	}
	return nil
}

func validateExercise(e *WorkoutExercise, idx int) error {
	field := func(name string) string { return fmt.Sprintf("exercises[%d].%s", idx, name) }

	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return &ValidationError{Field: field("name"), Msg: "exercise name is required"}
	}
	if len(e.Name) > MaxNameLen {
		return &ValidationError{Field: field("name"), Msg: fmt.Sprintf("must be at most %d characters", MaxNameLen)}
	}
	if e.Sets < 1 || e.Sets > MaxSets {
		return &ValidationError{Field: field("sets"), Msg: fmt.Sprintf("must be between 1 and %d", MaxSets)}
	}
	if e.Reps < 1 || e.Reps > MaxReps {
		return &ValidationError{Field: field("reps"), Msg: fmt.Sprintf("must be between 1 and %d", MaxReps)}
	}
	if e.Weight < 0 || e.Weight > MaxWeightKg {
		return &ValidationError{Field: field("weight"), Msg: fmt.Sprintf("must be between 0 and %d", MaxWeightKg)}
	}
	return nil
}

// ValidateShareCode checks the 6-character uppercase alphanumeric share
// code format. Codes are validated before any lookup happens.
func ValidateShareCode(code string) error {
	if !shareCodeRe.MatchString(code) {
		return &ValidationError{Field: "shareCode", Msg: "must be 6 uppercase alphanumeric characters"}
	}
	return nil
}
