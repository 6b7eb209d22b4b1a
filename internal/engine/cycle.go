package engine

import (
	"context"
	"errors"
	"time"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/progression"
	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
)

// CycleView is a cycle together with its scheduled sessions.
type CycleView struct {
	Cycle    models.Cycle     `json:"cycle"`
	Sessions []models.Session `json:"sessions"`
}

// CreateCycle creates a pending cycle for the given plan. No sessions exist
// until StartCycle generates the schedule.
func (e *Engine) CreateCycle(ctx context.Context, planID uuid.UUID, startDate time.Time) (*models.Cycle, error) {
	plan, err := e.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, asEngineErr(err, "loading plan")
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	if err := e.ensureNoActiveCycle(ctx); err != nil {
		return nil, err
	}

	cycle := &models.Cycle{
		ID:        uuid.New(),
		PlanID:    planID,
		StartDate: startDate,
		Status:    models.CyclePending,
		CreatedAt: e.now(),
	}
	if err := e.store.CreateCycle(ctx, cycle); err != nil {
		return nil, asEngineErr(err, "creating cycle")
	}

	e.log.Info("cycle created", "cycle_id", cycle.ID, "plan_id", planID, "start_date", startDate.Format("2006-01-02"))
	return cycle, nil
}

// StartCycle generates the full 7-period schedule for a pending cycle and
// activates it. Generation is all-or-nothing: on any failure the cycle stays
// pending and no sessions are visible.
func (e *Engine) StartCycle(ctx context.Context, id uuid.UUID) (*CycleView, error) {
	cycle, err := e.store.GetCycle(ctx, id)
	if err != nil {
		return nil, asEngineErr(err, "loading cycle")
	}
	if cycle.Status != models.CyclePending {
		return nil, validationf("cannot start a cycle that is %s", cycle.Status)
	}

	plan, err := e.store.GetPlan(ctx, cycle.PlanID)
	if err != nil {
		return nil, asEngineErr(err, "loading plan")
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	if err := e.ensureNoActiveCycle(ctx); err != nil {
		return nil, err
	}

	sessions, sets := buildSchedule(plan, cycle)
	if err := e.store.ActivateCycle(ctx, cycle.ID, sessions, sets); err != nil {
		return nil, asEngineErr(err, "activating cycle")
	}
	cycle.Status = models.CycleActive
	cycle.CurrentPeriod = 1

	e.log.Info("cycle activated",
		"cycle_id", cycle.ID,
		"sessions", len(sessions),
		"sets", len(sets),
	)
	return &CycleView{Cycle: *cycle, Sessions: sessions}, nil
}

// ActiveCycle returns the currently active cycle with its sessions.
func (e *Engine) ActiveCycle(ctx context.Context) (*CycleView, error) {
	cycle, err := e.store.ActiveCycle(ctx)
	if err != nil {
		return nil, asEngineErr(err, "loading active cycle")
	}
	return e.cycleView(ctx, cycle)
}

// Cycle returns a cycle by ID with its sessions.
func (e *Engine) Cycle(ctx context.Context, id uuid.UUID) (*CycleView, error) {
	cycle, err := e.store.GetCycle(ctx, id)
	if err != nil {
		return nil, asEngineErr(err, "loading cycle")
	}
	return e.cycleView(ctx, cycle)
}

// CompleteCycle marks an active cycle completed. History is preserved.
func (e *Engine) CompleteCycle(ctx context.Context, id uuid.UUID) (*models.Cycle, error) {
	return e.finishCycle(ctx, id, models.CycleCompleted)
}

// CancelCycle cancels a pending or active cycle. History is preserved.
func (e *Engine) CancelCycle(ctx context.Context, id uuid.UUID) (*models.Cycle, error) {
	return e.finishCycle(ctx, id, models.CycleCancelled)
}

func (e *Engine) finishCycle(ctx context.Context, id uuid.UUID, status models.CycleStatus) (*models.Cycle, error) {
	cycle, err := e.store.GetCycle(ctx, id)
	if err != nil {
		return nil, asEngineErr(err, "loading cycle")
	}
	if cycle.Status.IsTerminal() {
		return nil, validationf("cycle is already %s", cycle.Status)
	}
	if status == models.CycleCompleted && cycle.Status != models.CycleActive {
		return nil, validationf("cannot complete a cycle that is %s", cycle.Status)
	}

	now := e.now()
	cycle.Status = status
	cycle.CompletedAt = &now
	if err := e.store.UpdateCycle(ctx, cycle); err != nil {
		return nil, asEngineErr(err, "updating cycle")
	}

	e.log.Info("cycle finished", "cycle_id", cycle.ID, "status", status)
	return cycle, nil
}

func (e *Engine) cycleView(ctx context.Context, cycle *models.Cycle) (*CycleView, error) {
	sessions, err := e.store.CycleSessions(ctx, cycle.ID)
	if err != nil {
		return nil, asEngineErr(err, "loading sessions")
	}
	return &CycleView{Cycle: *cycle, Sessions: sessions}, nil
}

func (e *Engine) ensureNoActiveCycle(ctx context.Context) error {
	active, err := e.store.ActiveCycle(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoActiveCycle) {
			return nil
		}
		return asEngineErr(err, "checking active cycle")
	}
	return conflictf("cycle %s is already active", active.ID)
}

func validatePlan(plan *models.Plan) error {
	if len(plan.Days) == 0 {
		return validationf("plan %q has no training days", plan.Name)
	}
	for _, day := range plan.Days {
		if len(day.Exercises) == 0 {
			return validationf("plan day %q has no exercises", day.Name)
		}
	}
	return nil
}

// buildSchedule expands a plan into all sessions and sets for one cycle.
// Each session is offset from the start date by whole weeks per period plus
// the gap between the plan day's weekday and the start weekday. A period-1
// session can land before the start date when its weekday precedes the start
// weekday; that is the intended anchoring.
func buildSchedule(plan *models.Plan, cycle *models.Cycle) ([]models.Session, []models.Set) {
	startWeekday := int(cycle.StartDate.Weekday())

	var sessions []models.Session
	var sets []models.Set
	for period := 1; period <= progression.PeriodsPerCycle; period++ {
		for _, day := range plan.Days {
			offset := (period-1)*7 + (day.Weekday - startWeekday)
			session := models.Session{
				ID:            uuid.New(),
				CycleID:       cycle.ID,
				PlanDayID:     day.ID,
				Period:        period,
				ScheduledDate: cycle.StartDate.AddDate(0, 0, offset),
				Status:        models.SessionPending,
			}
			sessions = append(sessions, session)

			for _, cfg := range day.Exercises {
				t := progression.Static(baselineFrom(cfg), period)
				for idx := 1; idx <= t.Sets; idx++ {
					sets = append(sets, models.Set{
						ID:           uuid.New(),
						SessionID:    session.ID,
						ExerciseID:   cfg.ExerciseID,
						SetIndex:     idx,
						TargetReps:   t.Reps,
						TargetWeight: t.Weight,
						Status:       models.SetPending,
					})
				}
			}
		}
	}
	return sessions, sets
}
