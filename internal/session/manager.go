package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for operations on an unknown or already
// finished session id.
var ErrSessionNotFound = errors.New("session: not found")

// PersistFunc writes a finished-session record to durable storage.
type PersistFunc func(ctx context.Context, s models.CompletedSession) error

// Session is one live workout session: the engine plus the timer handles
// that drive it.
type Session struct {
	ID     uuid.UUID
	UserID int
	Engine *Engine

	mu            sync.Mutex
	elapsedRunner *Runner
	restRunner    *Runner
}

// Manager owns all in-memory sessions. Sessions exist only between start
// and finish/abandon; nothing here is persisted.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	interval time.Duration
	log      *slog.Logger
}

// NewManager creates a Manager ticking sessions at the given interval
// (one second in production).
func NewManager(interval time.Duration, log *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		interval: interval,
		log:      log,
	}
}

// Start begins a session over the given workout and starts its elapsed
// ticker. Fails with ErrInvalidStart when the workout has no exercises.
func (m *Manager) Start(w models.Workout, opts ...Option) (*Session, error) {
	engine, err := NewEngine(w, opts...)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:     uuid.New(),
		UserID: w.UserID,
		Engine: engine,
	}
	s.elapsedRunner = NewRunner(m.interval, engine.Tick)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Info("session started", "session_id", s.ID, "workout", w.Name)
	return s, nil
}

// Get returns a live session by id.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// ToggleSet flips a set's completion flag and, when the set was just
// marked complete, makes sure a rest countdown ticker is running.
func (m *Manager) ToggleSet(id uuid.UUID, exerciseID string, setIndex int) (bool, error) {
	s, err := m.Get(id)
	if err != nil {
		return false, err
	}

	completed, err := s.Engine.ToggleSet(exerciseID, setIndex)
	if err != nil {
		return false, err
	}
	if completed {
		s.ensureRestRunner(m.interval)
	}
	return completed, nil
}

// ensureRestRunner starts the rest ticker if none is live. A countdown
// restarted by another completed set reuses the already running ticker.
func (s *Session) ensureRestRunner(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.restRunner != nil {
		select {
		case <-s.restRunner.done:
			// previous countdown expired, runner gone
		default:
			return
		}
	}

	engine := s.Engine
	s.restRunner = NewRunner(interval, func() bool {
		engine.TickRest()
		return engine.Rest().Active && engine.Phase() == PhaseRunning
	})
}

// stopRunners cancels both timer handles. Safe to call repeatedly.
func (s *Session) stopRunners() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsedRunner.Stop()
	if s.restRunner != nil {
		s.restRunner.Stop()
	}
}

// Finish finalizes a session and hands the snapshot to persist. On
// success the session is committed, removed, and the summary returned.
// On persistence failure the session stays finalizing with its snapshot
// retained, so the caller can retry without losing data.
func (m *Manager) Finish(ctx context.Context, id uuid.UUID, persist PersistFunc) (string, models.CompletedSession, error) {
	s, err := m.Get(id)
	if err != nil {
		return "", models.CompletedSession{}, err
	}

	record, err := s.Engine.Finalize(time.Now())
	if err != nil {
		return "", models.CompletedSession{}, err
	}
	s.stopRunners()

	if err := persist(ctx, record); err != nil {
		m.log.Error("session persist failed", "session_id", id, "error", err)
		return "", models.CompletedSession{}, err
	}

	summary, err := s.Engine.Commit()
	if err != nil {
		return "", models.CompletedSession{}, err
	}

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	m.log.Info("session committed", "session_id", id, "summary", summary)
	return summary, record, nil
}

// Abandon discards a session without persisting. Not an error: partial
// workouts are simply not saved.
func (m *Manager) Abandon(id uuid.UUID) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}

	s.stopRunners()
	s.Engine.Abandon()

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	m.log.Info("session abandoned", "session_id", id)
	return nil
}
