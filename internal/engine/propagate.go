package engine

import (
	"context"
	"sort"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/progression"
	"github.com/google/uuid"
)

// PropagationResult reports the scope of a forward propagation so callers
// can tell the user how many future workouts changed.
type PropagationResult struct {
	SessionsUpdated int `json:"sessions_updated"`
	SetsModified    int `json:"sets_modified"`
}

// Propagate pushes the current plan-day-exercise configuration into every
// still-pending session of the cycle for that plan day, re-deriving targets
// with the static formula and reconciling set counts. Sessions that are
// in_progress or terminal are never touched. The plan-editing layer calls
// this once per changed (plan day, exercise) pair.
func (e *Engine) Propagate(ctx context.Context, cycleID, planDayID, exerciseID uuid.UUID) (*PropagationResult, error) {
	cfg, err := e.store.GetPlanDayExercise(ctx, planDayID, exerciseID)
	if err != nil {
		return nil, asEngineErr(err, "loading plan day exercise")
	}
	return e.propagate(ctx, cycleID, planDayID, *cfg, cfg.Sets, uuid.Nil)
}

// propagateSetCount propagates an add/remove-set edit made inside a session.
// The edited session itself was already mutated directly and is excluded.
func (e *Engine) propagateSetCount(ctx context.Context, session *models.Session, exerciseID uuid.UUID, newCount int) (*PropagationResult, error) {
	cfg, err := e.store.GetPlanDayExercise(ctx, session.PlanDayID, exerciseID)
	if err != nil {
		return nil, asEngineErr(err, "loading plan day exercise")
	}
	return e.propagate(ctx, session.CycleID, session.PlanDayID, *cfg, newCount, session.ID)
}

func (e *Engine) propagate(ctx context.Context, cycleID, planDayID uuid.UUID, cfg models.PlanDayExercise, baseSets int, exclude uuid.UUID) (*PropagationResult, error) {
	base := baselineFrom(cfg)
	base.Sets = baseSets

	sessions, err := e.store.PendingSessions(ctx, cycleID, planDayID)
	if err != nil {
		return nil, asEngineErr(err, "loading pending sessions")
	}

	result := &PropagationResult{}
	var upserts []models.Set
	var deletes []uuid.UUID
	for _, session := range sessions {
		if session.ID == exclude {
			continue
		}
		t := progression.Static(base, session.Period)

		sets, err := e.store.SessionSets(ctx, session.ID)
		if err != nil {
			return nil, asEngineErr(err, "loading sets")
		}
		var exSets []models.Set
		for _, s := range sets {
			if s.ExerciseID == cfg.ExerciseID {
				exSets = append(exSets, s)
			}
		}
		sort.Slice(exSets, func(i, j int) bool { return exSets[i].SetIndex < exSets[j].SetIndex })

		modified := 0

		// Retarget sets that survive, drop pending surplus from the top.
		for i := range exSets {
			if i < t.Sets {
				if exSets[i].TargetReps != t.Reps || exSets[i].TargetWeight != t.Weight {
					exSets[i].TargetReps = t.Reps
					exSets[i].TargetWeight = t.Weight
					upserts = append(upserts, exSets[i])
					modified++
				}
			} else if exSets[i].Status == models.SetPending {
				deletes = append(deletes, exSets[i].ID)
				modified++
			}
		}

		// Grow to the new count with freshly derived targets.
		nextIndex := 1
		if len(exSets) > 0 {
			nextIndex = exSets[len(exSets)-1].SetIndex + 1
		}
		for i := len(exSets); i < t.Sets; i++ {
			upserts = append(upserts, models.Set{
				ID:           uuid.New(),
				SessionID:    session.ID,
				ExerciseID:   cfg.ExerciseID,
				SetIndex:     nextIndex,
				TargetReps:   t.Reps,
				TargetWeight: t.Weight,
				Status:       models.SetPending,
			})
			nextIndex++
			modified++
		}

		if modified > 0 {
			result.SessionsUpdated++
			result.SetsModified += modified
		}
	}

	if err := e.store.ApplySetChanges(ctx, upserts, deletes); err != nil {
		return nil, asEngineErr(err, "applying propagation")
	}

	e.log.Info("propagation applied",
		"cycle_id", cycleID,
		"plan_day_id", planDayID,
		"exercise_id", cfg.ExerciseID,
		"sessions_updated", result.SessionsUpdated,
		"sets_modified", result.SetsModified,
	)
	return result, nil
}
