package session

import (
	"errors"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

func pushDay() models.Workout {
	return models.Workout{
		Name: "Push Day",
		Exercises: []models.WorkoutExercise{
			{ID: "0001", Name: "bench press", Sets: 3, Reps: 8, Weight: 40},
		},
	}
}

func fullBody() models.Workout {
	return models.Workout{
		Name: "Full Body",
		Exercises: []models.WorkoutExercise{
			{ID: "0001", Name: "squat", Sets: 3, Reps: 10, Weight: 20},
			{ID: "0002", Name: "deadlift", Sets: 2, Reps: 5, Weight: 60},
		},
	}
}

// TestNewEngineRequiresExercises verifies a session cannot start without
// a workout holding at least one exercise.
func TestNewEngineRequiresExercises(t *testing.T) {
	_, err := NewEngine(models.Workout{Name: "empty"})
	if !errors.Is(err, ErrInvalidStart) {
		t.Fatalf("err = %v, want ErrInvalidStart", err)
	}
}

// TestElapsedTick verifies the elapsed counter is purely additive and
// formats as zero-padded HH:MM:SS.
func TestElapsedTick(t *testing.T) {
	e, err := NewEngine(pushDay())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3725; i++ {
		if !e.Tick() {
			t.Fatal("Tick() = false while running")
		}
	}
	if got := e.Elapsed(); got != 3725 {
		t.Errorf("Elapsed() = %d, want 3725", got)
	}
	if got := FormatElapsed(e.Elapsed()); got != "01:02:05" {
		t.Errorf("FormatElapsed = %q, want 01:02:05", got)
	}
}

// TestTickStopsAfterFinalize verifies the elapsed tick refuses to
// advance once the session leaves the running phase.
func TestTickStopsAfterFinalize(t *testing.T) {
	e, _ := NewEngine(pushDay())
	e.Tick()
	if _, err := e.Finalize(time.Now()); err != nil {
		t.Fatal(err)
	}
	if e.Tick() {
		t.Error("Tick() = true after finalize")
	}
	if got := e.Elapsed(); got != 1 {
		t.Errorf("Elapsed() = %d, want 1", got)
	}
}

// TestToggleSetDouble verifies that toggling the same set twice restores
// the completion state (idempotence of double-toggle).
func TestToggleSetDouble(t *testing.T) {
	e, _ := NewEngine(pushDay())

	if _, err := e.ToggleSet("0001", 1); err != nil {
		t.Fatal(err)
	}
	if got := e.CompletedSetCount(); got != 1 {
		t.Fatalf("CompletedSetCount = %d, want 1", got)
	}
	if _, err := e.ToggleSet("0001", 1); err != nil {
		t.Fatal(err)
	}
	if got := e.CompletedSetCount(); got != 0 {
		t.Errorf("CompletedSetCount after double toggle = %d, want 0", got)
	}
}

// TestToggleSetBounds verifies unknown exercises and out-of-range set
// indexes are rejected.
func TestToggleSetBounds(t *testing.T) {
	e, _ := NewEngine(pushDay())

	if _, err := e.ToggleSet("nope", 0); !errors.Is(err, ErrUnknownExercise) {
		t.Errorf("err = %v, want ErrUnknownExercise", err)
	}
	if _, err := e.ToggleSet("0001", 3); err == nil {
		t.Error("expected error for set index out of range")
	}
	if _, err := e.ToggleSet("0001", -1); err == nil {
		t.Error("expected error for negative set index")
	}
}

// TestDerivedMetrics verifies totalTargetSets stays invariant under
// toggles and totalWeightLifted = Σ weight × reps × completed sets.
func TestDerivedMetrics(t *testing.T) {
	e, _ := NewEngine(fullBody())

	if got := e.TotalTargetSets(); got != 5 {
		t.Fatalf("TotalTargetSets = %d, want 5", got)
	}

	e.ToggleSet("0001", 0)
	e.ToggleSet("0001", 2)
	e.ToggleSet("0002", 1)

	if got := e.TotalTargetSets(); got != 5 {
		t.Errorf("TotalTargetSets after toggles = %d, want 5", got)
	}
	if got := e.CompletedSetCount(); got != 3 {
		t.Errorf("CompletedSetCount = %d, want 3", got)
	}
	// squat: 20×10×2 = 400, deadlift: 60×5×1 = 300
	if got := e.TotalWeightLifted(); got != 700 {
		t.Errorf("TotalWeightLifted = %v, want 700", got)
	}
	if completed, total := e.CompletedSetCount(), e.TotalTargetSets(); completed > total {
		t.Errorf("completed %d exceeds total %d", completed, total)
	}
}

// TestRestAutoStart verifies marking a set complete starts the rest
// countdown at the configured duration, and unmarking does not touch it.
func TestRestAutoStart(t *testing.T) {
	e, _ := NewEngine(pushDay())

	if e.Rest().Active {
		t.Fatal("rest timer active at session start")
	}

	e.ToggleSet("0001", 0)
	rest := e.Rest()
	if !rest.Active || rest.Remaining != DefaultRestSeconds {
		t.Fatalf("rest = %+v, want active at %d", rest, DefaultRestSeconds)
	}

	for i := 0; i < 30; i++ {
		e.TickRest()
	}
	// toggling a different set off must not restart the countdown
	e.ToggleSet("0001", 1)
	e.ToggleSet("0001", 1)
	e.ToggleSet("0001", 1)
	if got := e.Rest().Remaining; got != DefaultRestSeconds {
		t.Errorf("remaining = %d, want countdown restarted to %d", got, DefaultRestSeconds)
	}

	e.ToggleSet("0001", 2)
	e.ToggleSet("0001", 2) // unmark: rest timer untouched
	if got := e.Rest(); !got.Active {
		t.Error("unmarking a set deactivated the rest timer")
	}
}

// TestScenarioPushDay walks the full documented scenario: 3×8×40kg,
// complete all sets, finish, expect totalWeight 960.
func TestScenarioPushDay(t *testing.T) {
	e, _ := NewEngine(pushDay(), WithMuscleGroups([]string{"Peitorais"}))

	e.ToggleSet("0001", 0)
	if got := e.CompletedSetCount(); got != 1 {
		t.Fatalf("CompletedSetCount = %d, want 1", got)
	}
	if rest := e.Rest(); !rest.Active || rest.Remaining != 90 {
		t.Fatalf("rest = %+v, want active at 90", rest)
	}

	e.ToggleSet("0001", 1)
	e.ToggleSet("0001", 2)
	for i := 0; i < 754; i++ {
		e.Tick()
	}

	record, err := e.Finalize(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if record.TotalSets != 3 || record.CompletedSets != 3 {
		t.Errorf("sets = %d/%d, want 3/3", record.CompletedSets, record.TotalSets)
	}
	if record.TotalWeight != 960 {
		t.Errorf("TotalWeight = %v, want 960", record.TotalWeight)
	}
	if record.DurationSec != 754 {
		t.Errorf("DurationSec = %d, want 754", record.DurationSec)
	}
	if len(record.MuscleGroups) != 1 || record.MuscleGroups[0] != "Peitorais" {
		t.Errorf("MuscleGroups = %v", record.MuscleGroups)
	}

	summary, err := e.Commit()
	if err != nil {
		t.Fatal(err)
	}
	want := "Treino finalizado! 3/3 séries completadas em 00:12:34"
	if summary != want {
		t.Errorf("summary = %q, want %q", summary, want)
	}
	if e.Phase() != PhaseCommitted {
		t.Errorf("phase = %s, want committed", e.Phase())
	}
}

// TestFinalizeRetry verifies the snapshot survives a failed persistence
// attempt: finalizing again returns the identical record.
func TestFinalizeRetry(t *testing.T) {
	e, _ := NewEngine(pushDay())
	e.ToggleSet("0001", 0)
	e.Tick()

	first, err := e.Finalize(time.Now())
	if err != nil {
		t.Fatal(err)
	}

	// persistence failed; caller retries
	second, err := e.Finalize(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID || !first.CompletedAt.Equal(second.CompletedAt) {
		t.Error("retry produced a different snapshot")
	}
	if second.CompletedSets != 1 || second.TotalWeight != 40*8*1 {
		t.Errorf("snapshot = %d sets, %v kg", second.CompletedSets, second.TotalWeight)
	}
}

// TestAbandon verifies abandoning discards state without error and
// blocks further mutation.
func TestAbandon(t *testing.T) {
	e, _ := NewEngine(pushDay())
	e.ToggleSet("0001", 0)
	e.Abandon()

	if e.Phase() != PhaseAbandoned {
		t.Fatalf("phase = %s, want abandoned", e.Phase())
	}
	if _, err := e.ToggleSet("0001", 1); !errors.Is(err, ErrNotRunning) {
		t.Errorf("err = %v, want ErrNotRunning", err)
	}
	if _, err := e.Finalize(time.Now()); !errors.Is(err, ErrFinished) {
		t.Errorf("err = %v, want ErrFinished", err)
	}
}

// TestWorkoutSnapshot verifies the engine holds a snapshot: mutating the
// caller's workout after start does not change session state.
func TestWorkoutSnapshot(t *testing.T) {
	w := pushDay()
	e, _ := NewEngine(w)

	w.Exercises[0].Weight = 999
	if got := e.TotalWeightLifted(); got != 0 {
		t.Errorf("TotalWeightLifted = %v, want 0", got)
	}
	e.ToggleSet("0001", 0)
	if got := e.TotalWeightLifted(); got != 40*8*1 {
		t.Errorf("TotalWeightLifted = %v, want 320 from snapshot values", got)
	}
}
