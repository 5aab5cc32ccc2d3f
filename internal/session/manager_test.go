package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

func testManager() *Manager {
	return NewManager(2*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// TestManagerStartAndElapsed verifies a started session accumulates
// elapsed time on its own ticker.
func TestManagerStartAndElapsed(t *testing.T) {
	m := testManager()
	s, err := m.Start(pushDay())
	if err != nil {
		t.Fatal(err)
	}
	defer m.Abandon(s.ID)

	deadline := time.After(time.Second)
	for s.Engine.Elapsed() < 2 {
		select {
		case <-deadline:
			t.Fatal("elapsed counter never advanced")
		case <-time.After(time.Millisecond):
		}
	}
}

// TestManagerStartInvalid verifies an exercise-less workout is refused.
func TestManagerStartInvalid(t *testing.T) {
	m := testManager()
	if _, err := m.Start(models.Workout{Name: "empty"}); !errors.Is(err, ErrInvalidStart) {
		t.Fatalf("err = %v, want ErrInvalidStart", err)
	}
}

// TestManagerFinishPersists verifies finish hands the snapshot to the
// persist func, commits, and removes the session.
func TestManagerFinishPersists(t *testing.T) {
	m := testManager()
	s, err := m.Start(pushDay())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ToggleSet(s.ID, "0001", 0); err != nil {
		t.Fatal(err)
	}

	var persisted *models.CompletedSession
	summary, record, err := m.Finish(context.Background(), s.ID, func(_ context.Context, cs models.CompletedSession) error {
		persisted = &cs
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if persisted == nil || persisted.CompletedSets != 1 {
		t.Errorf("persisted = %+v, want 1 completed set", persisted)
	}
	if record.TotalWeight != 40*8*1 {
		t.Errorf("TotalWeight = %v, want 320", record.TotalWeight)
	}
	if summary == "" {
		t.Error("empty summary")
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session still live after finish: %v", err)
	}
}

// TestManagerFinishRetry verifies a failed persist leaves the session
// finalizing with its snapshot, and a retry succeeds with the same data.
func TestManagerFinishRetry(t *testing.T) {
	m := testManager()
	s, err := m.Start(pushDay())
	if err != nil {
		t.Fatal(err)
	}
	m.ToggleSet(s.ID, "0001", 0)

	persistErr := errors.New("backend down")
	_, _, err = m.Finish(context.Background(), s.ID, func(context.Context, models.CompletedSession) error {
		return persistErr
	})
	if !errors.Is(err, persistErr) {
		t.Fatalf("err = %v, want persist failure", err)
	}
	if s.Engine.Phase() != PhaseFinalizing {
		t.Fatalf("phase = %s, want finalizing", s.Engine.Phase())
	}

	summary, record, err := m.Finish(context.Background(), s.ID, func(context.Context, models.CompletedSession) error {
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if record.CompletedSets != 1 {
		t.Errorf("retry snapshot lost data: %+v", record)
	}
	if summary == "" {
		t.Error("empty summary on retry")
	}
}

// TestManagerAbandon verifies abandoning stops tickers and removes the
// session without persisting.
func TestManagerAbandon(t *testing.T) {
	m := testManager()
	s, err := m.Start(pushDay())
	if err != nil {
		t.Fatal(err)
	}
	m.ToggleSet(s.ID, "0001", 0)

	if err := m.Abandon(s.ID); err != nil {
		t.Fatal(err)
	}
	if s.Engine.Phase() != PhaseAbandoned {
		t.Errorf("phase = %s, want abandoned", s.Engine.Phase())
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session still live after abandon: %v", err)
	}

	elapsed := s.Engine.Elapsed()
	time.Sleep(10 * time.Millisecond)
	if s.Engine.Elapsed() != elapsed {
		t.Error("elapsed ticker kept running after abandon")
	}
}

// TestRunnerStopIdempotent verifies Stop can be called repeatedly,
// including after the task stopped itself.
func TestRunnerStopIdempotent(t *testing.T) {
	calls := 0
	r := NewRunner(time.Millisecond, func() bool {
		calls++
		return calls < 2
	})

	deadline := time.After(time.Second)
	for calls < 2 {
		select {
		case <-deadline:
			t.Fatal("runner never ran")
		case <-time.After(time.Millisecond):
		}
	}
	r.Stop()
	r.Stop()
}
