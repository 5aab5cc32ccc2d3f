package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/liftlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// UpsertExercises batch-upserts catalog entries keyed by id. Re-importing
// an id overwrites the previous values. Returns the number of rows written.
func (db *DB) UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error) {
	if len(exercises) == 0 {
		return 0, nil
	}

	query := `INSERT INTO exercises (id, name, body_part, equipment, target, gif_url, secondary_muscles, instructions) VALUES `
	args := make([]any, 0, len(exercises)*8)
	valueStrings := make([]string, 0, len(exercises))

	for i, e := range exercises {
		base := i * 8
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		args = append(args, e.ID, e.Name, e.BodyPart, e.Equipment, e.Target, e.GifURL,
			e.SecondaryMuscles, e.Instructions)
	}

	query += strings.Join(valueStrings, ",") + ` ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		body_part = EXCLUDED.body_part,
		equipment = EXCLUDED.equipment,
		target = EXCLUDED.target,
		gif_url = EXCLUDED.gif_url,
		secondary_muscles = EXCLUDED.secondary_muscles,
		instructions = EXCLUDED.instructions`

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting exercises: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SearchExercises filters the local catalog. A trimmed term of at least
// two characters matches the name as a case-insensitive substring;
// bodyPart and equipment are exact matches when non-empty.
func (db *DB) SearchExercises(ctx context.Context, term, bodyPart, equipment string, limit int) ([]models.Exercise, error) {
	query := `SELECT id, name, body_part, equipment, target, gif_url, secondary_muscles, instructions
		 FROM exercises`
	var conds []string
	var args []any

	if t := strings.TrimSpace(term); len(t) >= 2 {
		args = append(args, "%"+t+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if bodyPart != "" {
		args = append(args, bodyPart)
		conds = append(conds, fmt.Sprintf("body_part = $%d", len(args)))
	}
	if equipment != "" {
		args = append(args, equipment)
		conds = append(conds, fmt.Sprintf("equipment = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d", len(args))

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.BodyPart, &e.Equipment, &e.Target, &e.GifURL,
			&e.SecondaryMuscles, &e.Instructions); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetExerciseByID retrieves a single catalog entry.
func (db *DB) GetExerciseByID(ctx context.Context, id string) (*models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, body_part, equipment, target, gif_url, secondary_muscles, instructions
		 FROM exercises WHERE id = $1`,
		id).Scan(&e.ID, &e.Name, &e.BodyPart, &e.Equipment, &e.Target, &e.GifURL,
		&e.SecondaryMuscles, &e.Instructions)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return &e, nil
}

// filterColumns maps filter types to catalog columns. Only these two
// columns may be queried for distinct values.
var filterColumns = map[string]string{
	"bodyPart":  "body_part",
	"equipment": "equipment",
}

// DistinctExerciseValues returns the sorted distinct values of a filter
// column ("bodyPart" or "equipment"), for building filter option lists.
func (db *DB) DistinctExerciseValues(ctx context.Context, filterType string) ([]string, error) {
	column, ok := filterColumns[filterType]
	if !ok {
		return nil, fmt.Errorf("unknown filter type %q", filterType)
	}

	rows, err := db.Pool.Query(ctx,
		fmt.Sprintf(`SELECT DISTINCT %s FROM exercises WHERE %s <> '' ORDER BY %s ASC`,
			column, column, column))
	if err != nil {
		return nil, fmt.Errorf("querying distinct %s: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
