package mcp

import (
	"context"
	"testing"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no
// value is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from
// context after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestParseFlexTime verifies both accepted date formats.
func TestParseFlexTime(t *testing.T) {
	d, err := parseFlexTime("2026-06-15")
	if err != nil {
		t.Fatal(err)
	}
	if d.Year() != 2026 || d.Month() != 6 || d.Day() != 15 {
		t.Errorf("date = %v", d)
	}

	ts, err := parseFlexTime("2026-06-15T10:30:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if ts.Hour() != 10 || ts.Minute() != 30 {
		t.Errorf("time = %v", ts)
	}

	if _, err := parseFlexTime("not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}
