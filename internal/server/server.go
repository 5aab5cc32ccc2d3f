// Package server exposes the HTTP API: workout CRUD, sharing, live
// sessions, history and exports, and exercise catalog search.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/importer"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/report"
	"github.com/claude/liftlog/internal/session"
	"github.com/claude/liftlog/internal/share"
)

// Store is the storage surface the handlers use directly. *storage.DB
// satisfies it; tests substitute a fake.
type Store interface {
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)

	CreateWorkout(ctx context.Context, w models.Workout) (models.Workout, error)
	GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.Workout, error)
	ListWorkouts(ctx context.Context, userID int) ([]models.Workout, error)
	UpdateWorkout(ctx context.Context, w models.Workout) error
	DeleteWorkout(ctx context.Context, id uuid.UUID, userID int) error

	InsertHistory(ctx context.Context, s models.CompletedSession) error
	ListHistory(ctx context.Context, userID int) ([]models.CompletedSession, error)

	GetExerciseByID(ctx context.Context, id string) (*models.Exercise, error)
}

// IdentityFunc resolves the caller's identity for a request. The tsnet
// listener provides one backed by WhoIs; plain listeners use a fixed
// local identity.
type IdentityFunc func(r *http.Request) (login, displayName string, err error)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       Store
	sessions *session.Manager
	catalog  *catalog.Client
	shares   *share.Service
	reports  *report.Reporter
	importer *importer.Importer
	identity IdentityFunc
	log      *slog.Logger
	apiKey   string
	router   chi.Router
	now      func() time.Time
}

// New creates a new Server with all routes configured.
func New(db Store, sessions *session.Manager, cat *catalog.Client, shares *share.Service, reports *report.Reporter, imp *importer.Importer, identity IdentityFunc, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		sessions: sessions,
		catalog:  cat,
		shares:   shares,
		reports:  reports,
		importer: imp,
		identity: identity,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
		now:      time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Import endpoint (API key required, no user identity)
	s.router.Route("/api/v1/import", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/exercises", s.handleImportExercises)
	})

	// User-facing API (identity resolved per request)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(Identity(s.identity, s.db, s.log))

		r.Get("/workouts", s.handleListWorkouts)
		r.Post("/workouts", s.handleCreateWorkout)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Put("/workouts/{id}", s.handleUpdateWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		r.Post("/workouts/{id}/share", s.handleShareWorkout)
		r.Post("/share/redeem", s.handleRedeemShare)

		r.Post("/sessions", s.handleStartSession)
		r.Get("/sessions/{id}", s.handleSessionState)
		r.Post("/sessions/{id}/sets/toggle", s.handleToggleSet)
		r.Post("/sessions/{id}/rest/pause", s.handlePauseRest)
		r.Post("/sessions/{id}/rest/resume", s.handleResumeRest)
		r.Post("/sessions/{id}/rest/reset", s.handleResetRest)
		r.Post("/sessions/{id}/finish", s.handleFinishSession)
		r.Post("/sessions/{id}/abandon", s.handleAbandonSession)

		r.Get("/history", s.handleListHistory)
		r.Get("/history/export.csv", s.handleExportCSV)
		r.Get("/history/export.html", s.handleExportPrintable)
		r.Get("/progress", s.handleProgress)

		r.Get("/exercises/search", s.handleSearchExercises)
		r.Get("/exercises/filters", s.handleExerciseFilters)
	})
}
