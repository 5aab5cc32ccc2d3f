// Package share issues and redeems short workout share codes.
package share

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

const (
	// codeAlphabet excludes nothing on purpose. Codes are uppercase
	// alphanumeric and validated by models.ValidateShareCode.
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxCodeAttempts bounds collision retries when minting a code.
	maxCodeAttempts = 10

	importedSuffix = " (Importado)"
)

// ErrExhaustedRetries is returned when code generation keeps colliding
// with existing codes. With a 36^6 space this indicates a storage bug
// rather than genuine exhaustion.
var ErrExhaustedRetries = errors.New("share: could not allocate a unique code")

// Store is the storage surface the share service needs.
type Store interface {
	GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.Workout, error)
	GetWorkoutByID(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	CreateWorkout(ctx context.Context, w models.Workout) (models.Workout, error)
	CreateShare(ctx context.Context, s models.SharedWorkout) error
	GetShareByWorkout(ctx context.Context, workoutID uuid.UUID) (*models.SharedWorkout, error)
	GetShareByCode(ctx context.Context, code string) (*models.SharedWorkout, error)
	ShareCodeExists(ctx context.Context, code string) (bool, error)
	IncrementShareAccess(ctx context.Context, code string) error
}

// Service mints share codes and copies shared workouts into the
// redeeming user's library.
type Service struct {
	store Store
	log   *slog.Logger
}

func New(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Issue returns the share record for a workout, creating one on first
// use. Issuing twice for the same workout returns the existing code.
// The workout must belong to ownerID.
func (s *Service) Issue(ctx context.Context, workoutID uuid.UUID, ownerID int) (*models.SharedWorkout, error) {
	if _, err := s.store.GetWorkout(ctx, workoutID, ownerID); err != nil {
		return nil, err
	}

	existing, err := s.store.GetShareByWorkout(ctx, workoutID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	code, err := s.mintCode(ctx)
	if err != nil {
		return nil, err
	}
	rec := models.SharedWorkout{
		ID:        uuid.New(),
		WorkoutID: workoutID,
		ShareCode: code,
		CreatedBy: ownerID,
	}
	if err := s.store.CreateShare(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating share: %w", err)
	}
	s.log.Info("share code issued", "workout_id", workoutID, "code", code)
	return &rec, nil
}

// Redeem copies the workout behind a share code into userID's library.
// The copy gets a fresh id and the name suffixed with "(Importado)".
func (s *Service) Redeem(ctx context.Context, code string, userID int) (*models.Workout, error) {
	if err := models.ValidateShareCode(code); err != nil {
		return nil, err
	}

	rec, err := s.store.GetShareByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	src, err := s.store.GetWorkoutByID(ctx, rec.WorkoutID)
	if err != nil {
		return nil, err
	}

	name := src.Name + importedSuffix
	if len(name) > models.MaxNameLen {
		name = name[:models.MaxNameLen-len(importedSuffix)] + importedSuffix
	}
	dup := models.Workout{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Exercises: src.CopyExercises(),
	}
	created, err := s.store.CreateWorkout(ctx, dup)
	if err != nil {
		return nil, fmt.Errorf("copying shared workout: %w", err)
	}

	if err := s.store.IncrementShareAccess(ctx, code); err != nil {
		// The copy already happened; losing a counter bump is fine.
		s.log.Warn("incrementing share access failed", "code", code, "error", err)
	}
	return &created, nil
}

func (s *Service) mintCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomCode(models.ShareCodeLength)
		if err != nil {
			return "", err
		}
		exists, err := s.store.ShareCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrExhaustedRetries
}

func randomCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading randomness: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
