package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/session"
	"github.com/claude/liftlog/internal/storage"
)

// sessionState is the wire view of a live session.
type sessionState struct {
	ID            uuid.UUID         `json:"id"`
	WorkoutID     uuid.UUID         `json:"workoutId"`
	WorkoutName   string            `json:"workoutName"`
	Phase         string            `json:"phase"`
	ElapsedSec    int               `json:"elapsed"`
	Elapsed       string            `json:"elapsedDisplay"`
	Completion    map[string][]bool `json:"completion"`
	CompletedSets int               `json:"completedSets"`
	TotalSets     int               `json:"totalSets"`
	TotalWeight   float64           `json:"totalWeight"`
	Rest          session.RestState `json:"rest"`
}

func stateOf(s *session.Session) sessionState {
	e := s.Engine
	w := e.Workout()
	elapsed := e.Elapsed()
	return sessionState{
		ID:            s.ID,
		WorkoutID:     w.ID,
		WorkoutName:   w.Name,
		Phase:         e.Phase().String(),
		ElapsedSec:    elapsed,
		Elapsed:       session.FormatElapsed(elapsed),
		Completion:    e.Completion(),
		CompletedSets: e.CompletedSetCount(),
		TotalSets:     e.TotalTargetSets(),
		TotalWeight:   e.TotalWeightLifted(),
		Rest:          e.Rest(),
	}
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		WorkoutID uuid.UUID `json:"workoutId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	workout, err := s.db.GetWorkout(r.Context(), req.WorkoutID, uid)
	if err != nil {
		s.writeError(w, err)
		return
	}

	groups := s.muscleGroups(r, workout.ExerciseIDs())
	live, err := s.sessions.Start(*workout, session.WithMuscleGroups(groups))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stateOf(live))
}

// muscleGroups tags a session with the distinct target muscles of its
// exercises. Exercises missing from the catalog contribute nothing.
func (s *Server) muscleGroups(r *http.Request, exerciseIDs []string) []string {
	var groups []string
	seen := make(map[string]bool)
	for _, id := range exerciseIDs {
		ex, err := s.db.GetExerciseByID(r.Context(), id)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				s.log.Warn("looking up exercise target", "exercise_id", id, "error", err)
			}
			continue
		}
		if ex.Target != "" && !seen[ex.Target] {
			seen[ex.Target] = true
			groups = append(groups, ex.Target)
		}
	}
	return groups
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	live, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateOf(live))
}

func (s *Server) handleToggleSet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var req struct {
		ExerciseID string `json:"exerciseId"`
		SetIndex   int    `json:"setIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if _, err := s.sessions.ToggleSet(id, req.ExerciseID, req.SetIndex); err != nil {
		s.writeError(w, err)
		return
	}
	live, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(live))
}

func (s *Server) handlePauseRest(w http.ResponseWriter, r *http.Request) {
	live, ok := s.session(w, r)
	if !ok {
		return
	}
	live.Engine.PauseRest()
	writeJSON(w, http.StatusOK, live.Engine.Rest())
}

func (s *Server) handleResumeRest(w http.ResponseWriter, r *http.Request) {
	live, ok := s.session(w, r)
	if !ok {
		return
	}
	live.Engine.ResumeRest()
	writeJSON(w, http.StatusOK, live.Engine.Rest())
}

func (s *Server) handleResetRest(w http.ResponseWriter, r *http.Request) {
	live, ok := s.session(w, r)
	if !ok {
		return
	}
	live.Engine.ResetRest()
	writeJSON(w, http.StatusOK, live.Engine.Rest())
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	summary, record, err := s.sessions.Finish(r.Context(), id, s.db.InsertHistory)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrFinished):
			s.writeError(w, err)
		default:
			// Persistence failed. The session is retained in the
			// finalizing phase, so the client can retry finish.
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"error": "saving workout failed, session retained for retry",
			})
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"session": record,
	})
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Abandon(id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionID parses the {id} route parameter and rejects sessions owned
// by another user.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return uuid.Nil, false
	}
	live, err := s.sessions.Get(id)
	if err != nil || live.UserID != uid {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return nil, false
	}
	live, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return live, true
}
