package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

type createCyclePayload struct {
	PlanID    uuid.UUID `json:"plan_id"`
	StartDate string    `json:"start_date"` // YYYY-MM-DD
}

func (s *Server) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	var payload createCyclePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.PlanID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "plan_id is required"})
		return
	}
	startDate, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start_date must be YYYY-MM-DD"})
		return
	}

	cycle, err := s.engine.CreateCycle(r.Context(), payload.PlanID, startDate)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cycle)
}

func (s *Server) handleStartCycle(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	view, err := s.engine.StartCycle(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleActiveCycle(w http.ResponseWriter, r *http.Request) {
	view, err := s.engine.ActiveCycle(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	view, err := s.engine.Cycle(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCompleteCycle(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	cycle, err := s.engine.CompleteCycle(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cycle)
}

func (s *Server) handleCancelCycle(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	cycle, err := s.engine.CancelCycle(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cycle)
}
