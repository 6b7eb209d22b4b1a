// Package server exposes the scheduling engine and the plan/exercise CRUD
// surface over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftplan/internal/engine"
	"github.com/claude/liftplan/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Compile-time check: *storage.DB satisfies the engine's store contract.
var _ engine.Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	engine *engine.Engine
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, eng *engine.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		engine: eng,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// MountMCP mounts the MCP transport handler.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Read endpoints
		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/{id}", s.handleGetExercise)
		r.Get("/plans", s.handleListPlans)
		r.Get("/plans/{id}", s.handleGetPlan)
		r.Get("/cycles/active", s.handleActiveCycle)
		r.Get("/cycles/{id}", s.handleGetCycle)
		r.Get("/sessions/{id}", s.handleGetSession)

		// Mutating endpoints (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))

			r.Post("/exercises", s.handleCreateExercise)
			r.Put("/exercises/{id}", s.handleUpdateExercise)
			r.Delete("/exercises/{id}", s.handleDeleteExercise)

			r.Post("/plans", s.handleCreatePlan)
			r.Delete("/plans/{id}", s.handleDeletePlan)
			r.Put("/plans/{planID}/days/{dayID}/exercises/{exerciseID}", s.handleUpdatePlanDayExercise)

			r.Post("/cycles", s.handleCreateCycle)
			r.Post("/cycles/{id}/start", s.handleStartCycle)
			r.Post("/cycles/{id}/complete", s.handleCompleteCycle)
			r.Post("/cycles/{id}/cancel", s.handleCancelCycle)

			r.Post("/sessions/{id}/start", s.handleStartSession)
			r.Post("/sessions/{id}/complete", s.handleCompleteSession)
			r.Post("/sessions/{id}/skip", s.handleSkipSession)
			r.Post("/sessions/{id}/sets", s.handleAddSet)
			r.Delete("/sessions/{id}/sets/{exerciseID}", s.handleRemoveSet)

			r.Post("/sets/{id}/log", s.handleLogSet)
			r.Post("/sets/{id}/skip", s.handleSkipSet)
			r.Post("/sets/{id}/unlog", s.handleUnlogSet)
		})
	})
}
