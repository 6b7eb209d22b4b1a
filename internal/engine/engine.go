// Package engine implements the mesocycle scheduler and progression engine:
// cycle generation, the session state machine, set logging, and forward
// propagation of mid-cycle edits.
package engine

import (
	"log/slog"
	"time"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/progression"
)

// Engine coordinates all scheduling and progression operations against a
// single store. Operations on one cycle are not safe for concurrent callers;
// the one-active-cycle invariant is enforced by the store's uniqueness guard.
type Engine struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// New creates an Engine.
func New(store Store, log *slog.Logger) *Engine {
	return &Engine{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// baselineFrom builds the progression seed for a plan day exercise.
func baselineFrom(cfg models.PlanDayExercise) progression.Baseline {
	return progression.Baseline{
		Weight:    cfg.Weight,
		Reps:      cfg.Reps,
		Sets:      cfg.Sets,
		Increment: cfg.WeightIncrement,
		MinReps:   cfg.MinReps,
		MaxReps:   cfg.MaxReps,
	}
}
