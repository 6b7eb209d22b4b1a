package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/claude/liftplan/internal/engine"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
)

type planPayload struct {
	Name          string           `json:"name"`
	DurationWeeks int              `json:"duration_weeks"`
	Days          []planDayPayload `json:"days"`
}

type planDayPayload struct {
	Weekday   int                      `json:"weekday"`
	Name      string                   `json:"name"`
	SortOrder int                      `json:"sort_order"`
	Exercises []planDayExercisePayload `json:"exercises"`
}

type planDayExercisePayload struct {
	ExerciseID  uuid.UUID `json:"exercise_id"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
	Weight      float64   `json:"weight"`
	RestSeconds int       `json:"rest_seconds"`
	MinReps     int       `json:"min_reps"`
	MaxReps     int       `json:"max_reps"`
	SortOrder   int       `json:"sort_order"`
}

func (p planDayExercisePayload) validate() string {
	if p.ExerciseID == uuid.Nil {
		return "exercise_id is required"
	}
	if p.Sets <= 0 || p.Reps <= 0 {
		return "sets and reps must be positive"
	}
	if p.Weight < 0 {
		return "weight must not be negative"
	}
	if p.MinReps < 0 || p.MaxReps < 0 || (p.MaxReps > 0 && p.MinReps > p.MaxReps) {
		return "invalid rep range"
	}
	return ""
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.db.ListPlans(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	plan, err := s.db.GetPlan(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var payload planPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if len(payload.Days) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a plan needs at least one day"})
		return
	}

	plan := &models.Plan{
		ID:            uuid.New(),
		Name:          payload.Name,
		DurationWeeks: payload.DurationWeeks,
		CreatedAt:     time.Now(),
	}
	for _, d := range payload.Days {
		if d.Weekday < 0 || d.Weekday > 6 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weekday must be 0-6"})
			return
		}
		if len(d.Exercises) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a plan day needs at least one exercise"})
			return
		}
		day := models.PlanDay{
			ID:        uuid.New(),
			PlanID:    plan.ID,
			Weekday:   d.Weekday,
			Name:      d.Name,
			SortOrder: d.SortOrder,
		}
		for _, e := range d.Exercises {
			if msg := e.validate(); msg != "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
				return
			}
			day.Exercises = append(day.Exercises, models.PlanDayExercise{
				ID:          uuid.New(),
				PlanDayID:   day.ID,
				ExerciseID:  e.ExerciseID,
				Sets:        e.Sets,
				Reps:        e.Reps,
				Weight:      e.Weight,
				RestSeconds: e.RestSeconds,
				MinReps:     e.MinReps,
				MaxReps:     e.MaxReps,
				SortOrder:   e.SortOrder,
			})
		}
		plan.Days = append(plan.Days, day)
	}

	if err := s.db.CreatePlan(r.Context(), plan); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.db.DeletePlan(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdatePlanDayExercise edits one exercise's baseline on a plan day.
// When the plan's cycle is currently active the edit is forward-propagated
// into all not-yet-started sessions and the propagation scope is returned.
func (s *Server) handleUpdatePlanDayExercise(w http.ResponseWriter, r *http.Request) {
	planID, ok := urlUUID(w, r, "planID")
	if !ok {
		return
	}
	dayID, ok := urlUUID(w, r, "dayID")
	if !ok {
		return
	}
	exerciseID, ok := urlUUID(w, r, "exerciseID")
	if !ok {
		return
	}

	var payload planDayExercisePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	payload.ExerciseID = exerciseID
	if msg := payload.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	pde, err := s.db.GetPlanDayExercise(r.Context(), dayID, exerciseID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	pde.Sets = payload.Sets
	pde.Reps = payload.Reps
	pde.Weight = payload.Weight
	pde.RestSeconds = payload.RestSeconds
	pde.MinReps = payload.MinReps
	pde.MaxReps = payload.MaxReps
	pde.SortOrder = payload.SortOrder
	if err := s.db.UpdatePlanDayExercise(r.Context(), pde); err != nil {
		s.writeError(w, err)
		return
	}

	response := map[string]any{"plan_day_exercise": pde}

	// Mid-cycle edits ripple into the active cycle's remaining sessions.
	active, err := s.db.ActiveCycle(r.Context())
	switch {
	case errors.Is(err, storage.ErrNoActiveCycle):
	case err != nil:
		s.writeError(w, err)
		return
	case active.PlanID == planID:
		var result *engine.PropagationResult
		result, err = s.engine.Propagate(r.Context(), active.ID, dayID, exerciseID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		response["propagation"] = result
	}

	writeJSON(w, http.StatusOK, response)
}
