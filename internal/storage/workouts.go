package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a requested row does not exist or is not
// visible to the given account.
var ErrNotFound = errors.New("not found")

// CreateWorkout inserts a workout definition and returns it with the
// generated creation timestamp.
func (db *DB) CreateWorkout(ctx context.Context, w models.Workout) (models.Workout, error) {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return models.Workout{}, fmt.Errorf("encoding exercises: %w", err)
	}

	row := db.Pool.QueryRow(ctx,
		`INSERT INTO workouts (id, user_id, name, exercises)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		w.ID, w.UserID, w.Name, exercises)
	if err := row.Scan(&w.CreatedAt); err != nil {
		return models.Workout{}, fmt.Errorf("inserting workout: %w", err)
	}
	return w, nil
}

// GetWorkout retrieves a workout by id, scoped to the owning account.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.Workout, error) {
	return db.getWorkout(ctx,
		`SELECT id, user_id, name, exercises, created_at
		 FROM workouts WHERE id = $1 AND user_id = $2`,
		id, userID)
}

// GetWorkoutByID retrieves a workout regardless of owner. Used by share
// redemption, where the source workout belongs to another account.
func (db *DB) GetWorkoutByID(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	return db.getWorkout(ctx,
		`SELECT id, user_id, name, exercises, created_at
		 FROM workouts WHERE id = $1`,
		id)
}

func (db *DB) getWorkout(ctx context.Context, query string, args ...any) (*models.Workout, error) {
	var w models.Workout
	var exercises []byte
	err := db.Pool.QueryRow(ctx, query, args...).
		Scan(&w.ID, &w.UserID, &w.Name, &exercises, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
		return nil, fmt.Errorf("decoding exercises: %w", err)
	}
	return &w, nil
}

// ListWorkouts retrieves all workouts of an account, newest first.
func (db *DB) ListWorkouts(ctx context.Context, userID int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, exercises, created_at
		 FROM workouts
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.Workout
	for rows.Next() {
		var w models.Workout
		var exercises []byte
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &exercises, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
			return nil, fmt.Errorf("decoding exercises: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// UpdateWorkout replaces a workout's name and exercise list.
func (db *DB) UpdateWorkout(ctx context.Context, w models.Workout) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("encoding exercises: %w", err)
	}

	tag, err := db.Pool.Exec(ctx,
		`UPDATE workouts SET name = $1, exercises = $2
		 WHERE id = $3 AND user_id = $4`,
		w.Name, exercises, w.ID, w.UserID)
	if err != nil {
		return fmt.Errorf("updating workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWorkout removes a workout and its share codes.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
