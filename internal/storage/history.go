package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// InsertHistory writes one finished-session record. Rows are immutable
// once written; the session engine calls this exactly once per finish.
func (db *DB) InsertHistory(ctx context.Context, s models.CompletedSession) error {
	exercises, err := json.Marshal(s.Exercises)
	if err != nil {
		return fmt.Errorf("encoding exercise snapshot: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workout_history (id, user_id, workout_name, duration_sec, total_weight,
		 total_sets, completed_sets, muscle_groups, exercises, completed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		s.ID, s.UserID, s.WorkoutName, s.DurationSec, s.TotalWeight,
		s.TotalSets, s.CompletedSets, s.MuscleGroups, exercises, s.CompletedAt)
	if err != nil {
		return fmt.Errorf("inserting history row: %w", err)
	}
	return nil
}

// ListHistory retrieves all finished sessions of an account, newest first.
func (db *DB) ListHistory(ctx context.Context, userID int) ([]models.CompletedSession, error) {
	return db.queryHistory(ctx,
		`SELECT id, user_id, workout_name, duration_sec, total_weight,
		 total_sets, completed_sets, muscle_groups, exercises, completed_at
		 FROM workout_history
		 WHERE user_id = $1
		 ORDER BY completed_at DESC`,
		userID)
}

// ListHistorySince retrieves finished sessions completed at or after the
// given time, newest first. Used by the progress report.
func (db *DB) ListHistorySince(ctx context.Context, userID int, since time.Time) ([]models.CompletedSession, error) {
	return db.queryHistory(ctx,
		`SELECT id, user_id, workout_name, duration_sec, total_weight,
		 total_sets, completed_sets, muscle_groups, exercises, completed_at
		 FROM workout_history
		 WHERE user_id = $1 AND completed_at >= $2
		 ORDER BY completed_at DESC`,
		userID, since)
}

func (db *DB) queryHistory(ctx context.Context, query string, args ...any) ([]models.CompletedSession, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var result []models.CompletedSession
	for rows.Next() {
		var s models.CompletedSession
		var exercises []byte
		if err := rows.Scan(&s.ID, &s.UserID, &s.WorkoutName, &s.DurationSec, &s.TotalWeight,
			&s.TotalSets, &s.CompletedSets, &s.MuscleGroups, &exercises, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if err := json.Unmarshal(exercises, &s.Exercises); err != nil {
			return nil, fmt.Errorf("decoding exercise snapshot: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
