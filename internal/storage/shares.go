package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateShare inserts a share-code row for a workout.
func (db *DB) CreateShare(ctx context.Context, s models.SharedWorkout) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO shared_workouts (id, workout_id, share_code, created_by)
		 VALUES ($1, $2, $3, $4)`,
		s.ID, s.WorkoutID, s.ShareCode, s.CreatedBy)
	if err != nil {
		return fmt.Errorf("inserting shared workout: %w", err)
	}
	return nil
}

// GetShareByWorkout returns the existing share row for a workout, if any.
func (db *DB) GetShareByWorkout(ctx context.Context, workoutID uuid.UUID) (*models.SharedWorkout, error) {
	return db.getShare(ctx,
		`SELECT id, workout_id, share_code, created_by, access_count, created_at
		 FROM shared_workouts WHERE workout_id = $1`,
		workoutID)
}

// GetShareByCode returns the share row for a code.
func (db *DB) GetShareByCode(ctx context.Context, code string) (*models.SharedWorkout, error) {
	return db.getShare(ctx,
		`SELECT id, workout_id, share_code, created_by, access_count, created_at
		 FROM shared_workouts WHERE share_code = $1`,
		code)
}

func (db *DB) getShare(ctx context.Context, query string, arg any) (*models.SharedWorkout, error) {
	var s models.SharedWorkout
	err := db.Pool.QueryRow(ctx, query, arg).
		Scan(&s.ID, &s.WorkoutID, &s.ShareCode, &s.CreatedBy, &s.AccessCount, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying shared workout: %w", err)
	}
	return &s, nil
}

// ShareCodeExists reports whether a code is already taken.
func (db *DB) ShareCodeExists(ctx context.Context, code string) (bool, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM shared_workouts WHERE share_code = $1`,
		code).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking share code: %w", err)
	}
	return count > 0, nil
}

// IncrementShareAccess bumps the redemption counter for a code.
func (db *DB) IncrementShareAccess(ctx context.Context, code string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE shared_workouts SET access_count = access_count + 1 WHERE share_code = $1`,
		code)
	if err != nil {
		return fmt.Errorf("incrementing share access: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
