package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/liftplan/internal/engine"
	"github.com/claude/liftplan/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the engine's failure taxonomy onto HTTP status classes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch engine.KindOf(err) {
	case engine.KindNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case engine.KindValidation:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case engine.KindConflict:
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		if storage.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// urlUUID parses a UUID path parameter, writing a 400 on failure.
func urlUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}
