package server

import (
	"net/http"
	"time"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
)

type exercisePayload struct {
	Name            string  `json:"name"`
	WeightIncrement float64 `json:"weight_increment"`
	IsCustom        bool    `json:"is_custom"`
}

func (p exercisePayload) validate() string {
	if p.Name == "" {
		return "name is required"
	}
	if p.WeightIncrement <= 0 {
		return "weight_increment must be positive"
	}
	return ""
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.ListExercises(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	exercise, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var payload exercisePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if msg := payload.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	exercise := &models.Exercise{
		ID:              uuid.New(),
		Name:            payload.Name,
		WeightIncrement: payload.WeightIncrement,
		IsCustom:        payload.IsCustom,
		CreatedAt:       time.Now(),
	}
	if err := s.db.CreateExercise(r.Context(), exercise); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	var payload exercisePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if msg := payload.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	exercise := &models.Exercise{
		ID:              id,
		Name:            payload.Name,
		WeightIncrement: payload.WeightIncrement,
		IsCustom:        payload.IsCustom,
	}
	if err := s.db.UpdateExercise(r.Context(), exercise); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.db.DeleteExercise(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
