package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a catalog entry: reference data describing one exercise,
// written only by the import pipeline.
type Exercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Target           string   `json:"target"`
	BodyPart         string   `json:"bodyPart"`
	Equipment        string   `json:"equipment"`
	GifURL           string   `json:"gifUrl"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	Instructions     []string `json:"instructions,omitempty"`
}

// WorkoutExercise is an exercise as planned inside a workout: the catalog
// entry plus target sets/reps/weight. Owned by its parent workout and
// always copied by value when a workout is duplicated or imported.
type WorkoutExercise struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	GifURL string  `json:"gifUrl,omitempty"`
}

// Workout is a user-defined ordered list of target exercises.
type Workout struct {
	ID        uuid.UUID         `json:"id"`
	UserID    int               `json:"-"`
	Name      string            `json:"name"`
	Exercises []WorkoutExercise `json:"exercises"`
	CreatedAt time.Time         `json:"createdAt"`
}

// CopyExercises returns a deep copy of the workout's exercise list.
func (w Workout) CopyExercises() []WorkoutExercise {
	out := make([]WorkoutExercise, len(w.Exercises))
	copy(out, w.Exercises)
	return out
}

// ExerciseIDs returns the catalog ids of the workout's exercises in
// order.
func (w Workout) ExerciseIDs() []string {
	ids := make([]string, len(w.Exercises))
	for i, e := range w.Exercises {
		ids[i] = e.ID
	}
	return ids
}

// ExerciseResult is the per-exercise completion snapshot inside a
// finished session record.
type ExerciseResult struct {
	Name          string  `json:"name"`
	Sets          int     `json:"sets"`
	Reps          int     `json:"reps"`
	Weight        float64 `json:"weight"`
	CompletedSets int     `json:"completedSets"`
}

// CompletedSession is the immutable history record emitted when a
// session is finished. Workout data is snapshotted, not referenced.
type CompletedSession struct {
	ID            uuid.UUID        `json:"id"`
	UserID        int              `json:"-"`
	WorkoutName   string           `json:"workoutName"`
	DurationSec   int              `json:"duration"`
	TotalWeight   float64          `json:"totalWeight"`
	TotalSets     int              `json:"totalSets"`
	CompletedSets int              `json:"completedSets"`
	MuscleGroups  []string         `json:"muscleGroups"`
	Exercises     []ExerciseResult `json:"exercises"`
	CompletedAt   time.Time        `json:"completedAt"`
}

// SharedWorkout maps a short public share code to one workout.
// Only access_count ever changes after creation.
type SharedWorkout struct {
	ID          uuid.UUID `json:"id"`
	WorkoutID   uuid.UUID `json:"workoutId"`
	ShareCode   string    `json:"shareCode"`
	CreatedBy   int       `json:"-"`
	AccessCount int       `json:"accessCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
