package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Phase is the lifecycle state of a workout session.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseFinalizing
	PhaseCommitted
	PhaseAbandoned
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseCommitted:
		return "committed"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// DefaultRestSeconds is the rest countdown started when a set is marked
// complete.
const DefaultRestSeconds = 90

var (
	// ErrInvalidStart is returned when a session is started without a
	// workout that has at least one exercise.
	ErrInvalidStart = errors.New("session: workout with at least one exercise required")

	// ErrNotRunning is returned for mutations after the session left the
	// running phase.
	ErrNotRunning = errors.New("session: not running")

	// ErrFinished is returned when finalizing a committed or abandoned
	// session.
	ErrFinished = errors.New("session: already finished")

	// ErrUnknownExercise is returned for a set toggle on an exercise id
	// that is not part of the workout snapshot.
	ErrUnknownExercise = errors.New("session: unknown exercise")
)

// Engine tracks one timed execution of a workout: elapsed seconds,
// per-set completion and the rest countdown. It holds a read-only
// snapshot of the workout; edits to the definition during the session do
// not propagate. All methods are safe for concurrent use, but time never
// advances on its own. An owner feeds one-second ticks via Tick and
// TickRest.
type Engine struct {
	mu sync.Mutex

	phase        Phase
	workout      models.Workout
	muscleGroups []string
	elapsed      int
	completion   map[string][]bool
	rest         RestTimer
	restSeconds  int
	onRestDone   func()

	// finalize snapshot, retained across failed persistence attempts
	snapshot *models.CompletedSession
}

// Option configures an Engine.
type Option func(*Engine)

// WithRestDuration overrides the default 90-second rest countdown.
func WithRestDuration(seconds int) Option {
	return func(e *Engine) { e.restSeconds = seconds }
}

// WithMuscleGroups tags the finished-session record with muscle groups.
func WithMuscleGroups(groups []string) Option {
	return func(e *Engine) { e.muscleGroups = groups }
}

// WithRestDoneFunc registers a callback fired when the rest countdown
// reaches zero. It is invoked outside the engine lock.
func WithRestDoneFunc(fn func()) Option {
	return func(e *Engine) { e.onRestDone = fn }
}

// NewEngine starts a session over a snapshot of the given workout. The
// workout must have at least one exercise, otherwise ErrInvalidStart.
func NewEngine(w models.Workout, opts ...Option) (*Engine, error) {
	if len(w.Exercises) == 0 {
		return nil, ErrInvalidStart
	}

	snapshot := w
	snapshot.Exercises = w.CopyExercises()

	e := &Engine{
		phase:       PhaseRunning,
		workout:     snapshot,
		completion:  make(map[string][]bool, len(snapshot.Exercises)),
		restSeconds: DefaultRestSeconds,
	}
	for _, ex := range snapshot.Exercises {
		e.completion[ex.ID] = make([]bool, ex.Sets)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Workout returns the session's workout snapshot.
func (e *Engine) Workout() models.Workout {
	e.mu.Lock()
	defer e.mu.Unlock()
	w := e.workout
	w.Exercises = e.workout.CopyExercises()
	return w
}

// Tick advances the elapsed-seconds counter by one. It reports whether
// the session is still running; a false return tells the owning runner
// to stop.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseRunning {
		return false
	}
	e.elapsed++
	return true
}

// Elapsed returns the elapsed session time in seconds.
func (e *Engine) Elapsed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsed
}

// FormatElapsed renders seconds as zero-padded HH:MM:SS.
func FormatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// ToggleSet flips the completion flag of set index i for the given
// exercise. Marking a set complete (false to true) restarts the rest
// countdown; unmarking leaves the rest timer alone. Returns the new
// completion value of the toggled set.
func (e *Engine) ToggleSet(exerciseID string, setIndex int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseRunning {
		return false, ErrNotRunning
	}
	sets, ok := e.completion[exerciseID]
	if !ok {
		return false, ErrUnknownExercise
	}
	if setIndex < 0 || setIndex >= len(sets) {
		return false, fmt.Errorf("session: set index %d out of range [0,%d)", setIndex, len(sets))
	}

	sets[setIndex] = !sets[setIndex]
	if sets[setIndex] {
		e.rest.Start(e.restSeconds)
	}
	return sets[setIndex], nil
}

// TickRest advances the rest countdown by one second and reports whether
// it just reached zero. The registered rest-done callback fires on that
// transition.
func (e *Engine) TickRest() bool {
	e.mu.Lock()
	done := e.rest.Tick()
	fn := e.onRestDone
	e.mu.Unlock()

	if done && fn != nil {
		fn()
	}
	return done
}

// Rest returns the current rest-timer sub-state.
func (e *Engine) Rest() RestState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rest.State()
}

// PauseRest freezes the rest countdown without altering the remaining
// seconds.
func (e *Engine) PauseRest() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rest.Pause()
}

// ResumeRest continues a paused countdown from the frozen value.
func (e *Engine) ResumeRest() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rest.Resume()
}

// ResetRest deactivates the countdown and zeroes the remaining seconds.
func (e *Engine) ResetRest() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rest.Reset()
}

// Completion returns a copy of the per-exercise completion lists.
func (e *Engine) Completion() map[string][]bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string][]bool, len(e.completion))
	for id, sets := range e.completion {
		cp := make([]bool, len(sets))
		copy(cp, sets)
		out[id] = cp
	}
	return out
}

// TotalTargetSets is the sum of target sets over all exercises. It is
// invariant across any sequence of toggles.
func (e *Engine) TotalTargetSets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, ex := range e.workout.Exercises {
		total += ex.Sets
	}
	return total
}

// CompletedSetCount is the number of sets currently marked complete.
func (e *Engine) CompletedSetCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completedLocked()
}

func (e *Engine) completedLocked() int {
	count := 0
	for _, sets := range e.completion {
		for _, done := range sets {
			if done {
				count++
			}
		}
	}
	return count
}

// TotalWeightLifted sums weight × reps × completed sets over all
// exercises. Target reps and weight apply uniformly to every completed
// set; per-set actuals are not tracked.
func (e *Engine) TotalWeightLifted() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0.0
	for _, ex := range e.workout.Exercises {
		completed := 0
		for _, done := range e.completion[ex.ID] {
			if done {
				completed++
			}
		}
		total += ex.Weight * float64(ex.Reps) * float64(completed)
	}
	return total
}

// Finalize snapshots the session into a CompletedSession and moves to
// the finalizing phase. Calling it again while finalizing returns the
// retained snapshot, so a failed persistence attempt can be retried
// without losing data.
func (e *Engine) Finalize(now time.Time) (models.CompletedSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.phase {
	case PhaseRunning:
		// fall through to build the snapshot
	case PhaseFinalizing:
		if e.snapshot != nil {
			return *e.snapshot, nil
		}
	default:
		return models.CompletedSession{}, ErrFinished
	}

	results := make([]models.ExerciseResult, 0, len(e.workout.Exercises))
	totalSets, completedSets := 0, 0
	totalWeight := 0.0
	for _, ex := range e.workout.Exercises {
		completed := 0
		for _, done := range e.completion[ex.ID] {
			if done {
				completed++
			}
		}
		results = append(results, models.ExerciseResult{
			Name:          ex.Name,
			Sets:          ex.Sets,
			Reps:          ex.Reps,
			Weight:        ex.Weight,
			CompletedSets: completed,
		})
		totalSets += ex.Sets
		completedSets += completed
		totalWeight += ex.Weight * float64(ex.Reps) * float64(completed)
	}

	e.rest.Reset()
	e.phase = PhaseFinalizing
	e.snapshot = &models.CompletedSession{
		ID:            uuid.New(),
		UserID:        e.workout.UserID,
		WorkoutName:   e.workout.Name,
		DurationSec:   e.elapsed,
		TotalWeight:   totalWeight,
		TotalSets:     totalSets,
		CompletedSets: completedSets,
		MuscleGroups:  e.muscleGroups,
		Exercises:     results,
		CompletedAt:   now,
	}
	return *e.snapshot, nil
}

// Commit marks the finalized session as persisted and returns a
// human-readable summary.
func (e *Engine) Commit() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseFinalizing || e.snapshot == nil {
		return "", fmt.Errorf("session: commit in phase %s", e.phase)
	}
	e.phase = PhaseCommitted
	return fmt.Sprintf("Treino finalizado! %d/%d séries completadas em %s",
		e.snapshot.CompletedSets, e.snapshot.TotalSets, FormatElapsed(e.snapshot.DurationSec)), nil
}

// Abandon discards the session without persisting anything. Abandoning a
// partial workout is allowed and is not an error.
func (e *Engine) Abandon() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == PhaseCommitted || e.phase == PhaseAbandoned {
		return
	}
	e.rest.Reset()
	e.phase = PhaseAbandoned
	e.snapshot = nil
}
