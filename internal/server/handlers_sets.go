package server

import (
	"net/http"
)

type logSetPayload struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

func (s *Server) handleLogSet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	var payload logSetPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	set, err := s.engine.LogSet(r.Context(), id, payload.Reps, payload.Weight)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleSkipSet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	set, err := s.engine.SkipSet(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleUnlogSet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	set, err := s.engine.UnlogSet(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}
