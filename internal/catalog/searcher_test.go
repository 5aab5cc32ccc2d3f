package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// TestSearcherCoalesces verifies rapid queries collapse into one search
// and only the last query's result is delivered.
func TestSearcherCoalesces(t *testing.T) {
	local := &fakeLocal{exercises: []models.Exercise{benchPress()}}
	s := NewSearcher(NewClient(local, &fakeRemote{}, testLog()), 20*time.Millisecond)

	var mu sync.Mutex
	var delivered int

	ctx := context.Background()
	for _, term := range []string{"b", "be", "ben", "bench"} {
		s.Query(ctx, term, "", "", func([]models.Exercise, error) {
			mu.Lock()
			delivered++
			mu.Unlock()
		})
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if delivered != 1 {
		t.Errorf("delivered = %d, want 1", delivered)
	}
	if local.calls != 1 {
		t.Errorf("local searches = %d, want 1", local.calls)
	}
}

// TestSearcherSupersedes verifies a stale query's callback never fires
// once a newer query has been issued.
func TestSearcherSupersedes(t *testing.T) {
	local := &fakeLocal{exercises: []models.Exercise{benchPress()}}
	s := NewSearcher(NewClient(local, &fakeRemote{}, testLog()), 10*time.Millisecond)

	var mu sync.Mutex
	var got []string

	ctx := context.Background()
	s.Query(ctx, "squat", "", "", func([]models.Exercise, error) {
		mu.Lock()
		got = append(got, "squat")
		mu.Unlock()
	})
	// let the first query fire, then supersede before checking delivery
	s.Query(ctx, "bench", "", "", func([]models.Exercise, error) {
		mu.Lock()
		got = append(got, "bench")
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "bench" {
		t.Errorf("delivered = %v, want only the newest query", got)
	}
}
