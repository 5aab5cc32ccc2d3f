package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/claude/liftlog/internal/models"
)

type fakeLocal struct {
	exercises []models.Exercise
	values    []string
	calls     int
}

func (f *fakeLocal) SearchExercises(_ context.Context, term, bodyPart, equipment string, limit int) ([]models.Exercise, error) {
	f.calls++
	return f.exercises, nil
}

func (f *fakeLocal) DistinctExerciseValues(context.Context, string) ([]string, error) {
	return f.values, nil
}

type fakeRemote struct {
	exercises []models.Exercise
	values    []string
	err       error
	calls     int
}

func (f *fakeRemote) Search(context.Context, string, string, string) ([]models.Exercise, error) {
	f.calls++
	return f.exercises, f.err
}

func (f *fakeRemote) FilterValues(context.Context, string) ([]string, error) {
	return f.values, f.err
}

func testLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func benchPress() models.Exercise {
	return models.Exercise{ID: "0025", Name: "barbell bench press", BodyPart: "Peito", Equipment: "Barra"}
}

// TestSearchLocalFirst verifies the local table satisfies a search
// without touching the remote proxy.
func TestSearchLocalFirst(t *testing.T) {
	local := &fakeLocal{exercises: []models.Exercise{benchPress()}}
	remote := &fakeRemote{}
	c := NewClient(local, remote, testLog())

	got, err := c.Search(context.Background(), "bench", "all", "all", 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "0025" {
		t.Fatalf("got %+v", got)
	}
	if remote.calls != 0 {
		t.Errorf("remote called %d times, want 0", remote.calls)
	}
}

// TestSearchRemoteFallback verifies an empty local result falls back to
// the remote proxy.
func TestSearchRemoteFallback(t *testing.T) {
	local := &fakeLocal{}
	remote := &fakeRemote{exercises: []models.Exercise{benchPress()}}
	c := NewClient(local, remote, testLog())

	got, err := c.Search(context.Background(), "bench", "", "", 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d exercises, want 1", len(got))
	}
	if remote.calls != 1 {
		t.Errorf("remote calls = %d, want 1", remote.calls)
	}
}

// TestSearchCached verifies an identical repeat query is served from the
// cache without hitting either source again.
func TestSearchCached(t *testing.T) {
	local := &fakeLocal{}
	remote := &fakeRemote{exercises: []models.Exercise{benchPress()}}
	c := NewClient(local, remote, testLog())

	ctx := context.Background()
	if _, err := c.Search(ctx, "bench", "all", "all", 50); err != nil {
		t.Fatal(err)
	}
	// same query, differently spelled term casing/spacing
	if _, err := c.Search(ctx, "  BENCH ", "all", "all", 50); err != nil {
		t.Fatal(err)
	}

	if local.calls != 1 {
		t.Errorf("local calls = %d, want 1", local.calls)
	}
	if remote.calls != 1 {
		t.Errorf("remote calls = %d, want 1", remote.calls)
	}
}

// TestSearchRemoteError verifies remote failures surface as-is so the
// handler can distinguish rate limiting from outages.
func TestSearchRemoteError(t *testing.T) {
	c := NewClient(&fakeLocal{}, &fakeRemote{err: ErrRateLimited}, testLog())

	_, err := c.Search(context.Background(), "bench", "", "", 50)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
}

// TestFilterValuesFallback verifies the filter option list uses distinct
// local values when present and the remote list otherwise.
func TestFilterValuesFallback(t *testing.T) {
	local := &fakeLocal{values: []string{"Costas", "Peito"}}
	remote := &fakeRemote{values: []string{"back", "chest"}}
	c := NewClient(local, remote, testLog())

	got, err := c.FilterValues(context.Background(), "bodyPart")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "Costas" {
		t.Fatalf("got %v, want local values", got)
	}

	c = NewClient(&fakeLocal{}, remote, testLog())
	got, err = c.FilterValues(context.Background(), "bodyPart")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "back" {
		t.Fatalf("got %v, want remote values", got)
	}
}

// TestCacheKey verifies key normalization: term is trimmed and
// lowercased, filters are kept verbatim.
func TestCacheKey(t *testing.T) {
	if Key(" Bench ", "Peito", "") != Key("bench", "Peito", "") {
		t.Error("keys differ for equivalent terms")
	}
	if Key("bench", "Peito", "") == Key("bench", "Costas", "") {
		t.Error("keys collide across body parts")
	}
}
