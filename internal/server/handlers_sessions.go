package server

import (
	"net/http"

	"github.com/google/uuid"
)

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	view, err := s.engine.Session(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	view, err := s.engine.StartSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	session, err := s.engine.CompleteSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleSkipSession(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	session, err := s.engine.SkipSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type addSetPayload struct {
	ExerciseID uuid.UUID `json:"exercise_id"`
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	var payload addSetPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.ExerciseID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise_id is required"})
		return
	}

	set, propagation, err := s.engine.AddSet(r.Context(), sessionID, payload.ExerciseID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"set":         set,
		"propagation": propagation,
	})
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	exerciseID, ok := urlUUID(w, r, "exerciseID")
	if !ok {
		return
	}

	propagation, err := s.engine.RemoveSet(r.Context(), sessionID, exerciseID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"propagation": propagation})
}
