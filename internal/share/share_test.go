package share

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

type fakeStore struct {
	workouts     map[uuid.UUID]models.Workout
	shares       map[string]models.SharedWorkout // by code
	accessCounts map[string]int
	alwaysExists bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		workouts:     make(map[uuid.UUID]models.Workout),
		shares:       make(map[string]models.SharedWorkout),
		accessCounts: make(map[string]int),
	}
}

func (f *fakeStore) GetWorkout(_ context.Context, id uuid.UUID, userID int) (*models.Workout, error) {
	w, ok := f.workouts[id]
	if !ok || w.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return &w, nil
}

func (f *fakeStore) GetWorkoutByID(_ context.Context, id uuid.UUID) (*models.Workout, error) {
	w, ok := f.workouts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &w, nil
}

func (f *fakeStore) CreateWorkout(_ context.Context, w models.Workout) (models.Workout, error) {
	f.workouts[w.ID] = w
	return w, nil
}

func (f *fakeStore) CreateShare(_ context.Context, s models.SharedWorkout) error {
	f.shares[s.ShareCode] = s
	return nil
}

func (f *fakeStore) GetShareByWorkout(_ context.Context, workoutID uuid.UUID) (*models.SharedWorkout, error) {
	for _, s := range f.shares {
		if s.WorkoutID == workoutID {
			return &s, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) GetShareByCode(_ context.Context, code string) (*models.SharedWorkout, error) {
	s, ok := f.shares[code]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &s, nil
}

func (f *fakeStore) ShareCodeExists(_ context.Context, code string) (bool, error) {
	if f.alwaysExists {
		return true, nil
	}
	_, ok := f.shares[code]
	return ok, nil
}

func (f *fakeStore) IncrementShareAccess(_ context.Context, code string) error {
	f.accessCounts[code]++
	return nil
}

func testService() (*Service, *fakeStore) {
	store := newFakeStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, log), store
}

func seedWorkout(store *fakeStore, userID int) models.Workout {
	w := models.Workout{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "Push Day",
		Exercises: []models.WorkoutExercise{
			{ID: "0001", Name: "Bench Press", Sets: 3, Reps: 8, Weight: 60},
		},
	}
	store.workouts[w.ID] = w
	return w
}

func TestIssueGeneratesValidCode(t *testing.T) {
	svc, store := testService()
	w := seedWorkout(store, 1)

	rec, err := svc.Issue(context.Background(), w.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := models.ValidateShareCode(rec.ShareCode); err != nil {
		t.Errorf("minted code %q invalid: %v", rec.ShareCode, err)
	}
}

func TestIssueIdempotent(t *testing.T) {
	svc, store := testService()
	w := seedWorkout(store, 1)

	first, err := svc.Issue(context.Background(), w.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Issue(context.Background(), w.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first.ShareCode != second.ShareCode {
		t.Errorf("second issue minted a new code: %q vs %q", first.ShareCode, second.ShareCode)
	}
	if len(store.shares) != 1 {
		t.Errorf("share records = %d, want 1", len(store.shares))
	}
}

func TestIssueRequiresOwnership(t *testing.T) {
	svc, store := testService()
	w := seedWorkout(store, 1)

	if _, err := svc.Issue(context.Background(), w.ID, 2); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for foreign workout", err)
	}
}

func TestIssueExhaustedRetries(t *testing.T) {
	svc, store := testService()
	w := seedWorkout(store, 1)
	store.alwaysExists = true

	if _, err := svc.Issue(context.Background(), w.ID, 1); !errors.Is(err, ErrExhaustedRetries) {
		t.Errorf("err = %v, want ErrExhaustedRetries", err)
	}
}

func TestRedeemCopiesWorkout(t *testing.T) {
	svc, store := testService()
	w := seedWorkout(store, 1)
	rec, err := svc.Issue(context.Background(), w.ID, 1)
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Redeem(context.Background(), rec.ShareCode, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID == w.ID {
		t.Error("redeem reused the source workout id")
	}
	if got.UserID != 2 {
		t.Errorf("copy owner = %d, want 2", got.UserID)
	}
	if got.Name != "Push Day (Importado)" {
		t.Errorf("copy name = %q", got.Name)
	}
	if len(got.Exercises) != 1 || got.Exercises[0].Name != "Bench Press" {
		t.Errorf("exercises not copied: %+v", got.Exercises)
	}
	if store.accessCounts[rec.ShareCode] != 1 {
		t.Errorf("access count = %d, want 1", store.accessCounts[rec.ShareCode])
	}

	// Mutating the copy must not touch the original.
	got.Exercises[0].Weight = 100
	if store.workouts[w.ID].Exercises[0].Weight != 60 {
		t.Error("copy shares exercise backing array with original")
	}
}

func TestRedeemBadCode(t *testing.T) {
	svc, _ := testService()

	var verr *models.ValidationError
	if _, err := svc.Redeem(context.Background(), "abc", 2); !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError for malformed code", err)
	}
	if _, err := svc.Redeem(context.Background(), "ZZZZZZ", 2); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for unknown code", err)
	}
}
