package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListWorkouts(ctx context.Context, userID int) ([]models.Workout, error)
	GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.Workout, error)
	ListHistory(ctx context.Context, userID int) ([]models.CompletedSession, error)
	ListHistorySince(ctx context.Context, userID int, since time.Time) ([]models.CompletedSession, error)
	SearchExercises(ctx context.Context, term, bodyPart, equipment string, limit int) ([]models.Exercise, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
