package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/claude/liftlog/internal/models"
)

// BatchSize is the number of rows per upsert batch.
const BatchSize = 100

// The catalog CSV numbers its list columns: secondaryMuscles/0..5 and
// instructions/0..10.
const (
	maxSecondaryMuscleCols = 6
	maxInstructionCols     = 11
)

// Store is the catalog table writer. *storage.DB satisfies it.
type Store interface {
	UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error)
}

// Importer reads an exercise-catalog CSV and upserts it into the store
// in fixed-size batches.
type Importer struct {
	store Store
	log   *slog.Logger
}

// New creates an Importer.
func New(store Store, log *slog.Logger) *Importer {
	return &Importer{store: store, log: log}
}

// ImportCSV parses the catalog export and upserts its rows keyed by id,
// so re-importing overwrites rather than duplicates. It returns the
// number of rows imported. A failing batch aborts the import; batches
// already written stay committed.
func (imp *Importer) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols["id"]; !ok {
		return 0, fmt.Errorf("CSV is missing the id column")
	}

	imported := 0
	batch := make([]models.Exercise, 0, BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := imp.store.UpsertExercises(ctx, batch); err != nil {
			return fmt.Errorf("importing batch ending at row %d: %w", imported+len(batch), err)
		}
		imported += len(batch)
		imp.log.Info("imported batch", "total", imported)
		batch = batch[:0]
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("reading CSV row: %w", err)
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		if field("id") == "" {
			continue
		}

		batch = append(batch, normalizeRow(field))
		if len(batch) == BatchSize {
			if err := flush(); err != nil {
				return imported, err
			}
		}
	}

	if err := flush(); err != nil {
		return imported, err
	}
	return imported, nil
}

// normalizeRow collapses the numbered list columns into ordered slices,
// skipping blank cells, and applies the vocabulary translations.
func normalizeRow(field func(string) string) models.Exercise {
	var secondary []string
	for i := 0; i < maxSecondaryMuscleCols; i++ {
		if m := field(fmt.Sprintf("secondaryMuscles/%d", i)); m != "" {
			secondary = append(secondary, TranslateTarget(m))
		}
	}

	var instructions []string
	for i := 0; i < maxInstructionCols; i++ {
		if s := field(fmt.Sprintf("instructions/%d", i)); s != "" {
			instructions = append(instructions, s)
		}
	}

	return models.Exercise{
		ID:               field("id"),
		Name:             field("name"),
		BodyPart:         TranslateBodyPart(field("bodyPart")),
		Equipment:        TranslateEquipment(field("equipment")),
		Target:           TranslateTarget(field("target")),
		GifURL:           field("gifUrl"),
		SecondaryMuscles: secondary,
		Instructions:     instructions,
	}
}
