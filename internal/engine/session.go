package engine

import (
	"context"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/progression"
	"github.com/google/uuid"
)

// SessionView is a session with its sets. For a pending session the set
// targets are the adaptive-formula projection of what starting it would
// prescribe (Projected=true); nothing is persisted until StartSession. Once
// a session leaves pending the stored targets are returned as-is.
type SessionView struct {
	Session   models.Session                  `json:"session"`
	Sets      []models.Set                    `json:"sets"`
	Decisions map[string]progression.Decision `json:"decisions,omitempty"` // exercise ID -> branch
	Projected bool                            `json:"projected"`
}

// Session returns the session view, overlaying adaptive targets for pending
// sessions.
func (e *Engine) Session(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	session, err := e.store.GetSession(ctx, id)
	if err != nil {
		return nil, asEngineErr(err, "loading session")
	}
	sets, err := e.store.SessionSets(ctx, session.ID)
	if err != nil {
		return nil, asEngineErr(err, "loading sets")
	}

	view := &SessionView{Session: *session, Sets: sets}
	if session.Status != models.SessionPending {
		return view, nil
	}

	projections, err := e.projectTargets(ctx, session)
	if err != nil {
		return nil, err
	}
	view.Projected = true
	view.Decisions = make(map[string]progression.Decision, len(projections))
	for exID, p := range projections {
		view.Decisions[exID.String()] = p.Decision
	}
	for i := range view.Sets {
		if p, ok := projections[view.Sets[i].ExerciseID]; ok && view.Sets[i].Status == models.SetPending {
			view.Sets[i].TargetReps = p.Targets.Reps
			view.Sets[i].TargetWeight = p.Targets.Weight
		}
	}
	return view, nil
}

// StartSession transitions a pending session to in_progress, persisting
// adaptive targets for all still-pending sets. This is the only place
// adaptive progression is written to durable sets.
func (e *Engine) StartSession(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	session, err := e.store.GetSession(ctx, id)
	if err != nil {
		return nil, asEngineErr(err, "loading session")
	}
	if session.Status != models.SessionPending {
		return nil, validationf("cannot start a workout that is %s", session.Status)
	}

	projections, err := e.projectTargets(ctx, session)
	if err != nil {
		return nil, err
	}
	sets, err := e.store.SessionSets(ctx, session.ID)
	if err != nil {
		return nil, asEngineErr(err, "loading sets")
	}

	var changed []models.Set
	for i := range sets {
		if sets[i].Status != models.SetPending {
			continue
		}
		p, ok := projections[sets[i].ExerciseID]
		if !ok {
			continue
		}
		sets[i].TargetReps = p.Targets.Reps
		sets[i].TargetWeight = p.Targets.Weight
		changed = append(changed, sets[i])
	}

	now := e.now()
	session.Status = models.SessionInProgress
	session.StartedAt = &now
	if err := e.store.SaveSession(ctx, session, changed); err != nil {
		return nil, asEngineErr(err, "saving session")
	}
	if err := e.bumpCurrentPeriod(ctx, session); err != nil {
		return nil, err
	}

	e.log.Info("workout started", "session_id", session.ID, "period", session.Period, "sets_retargeted", len(changed))
	return &SessionView{Session: *session, Sets: sets}, nil
}

// CompleteSession marks an in-progress session completed. A session that was
// never started cannot be completed.
func (e *Engine) CompleteSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	session, err := e.store.GetSession(ctx, id)
	if err != nil {
		return nil, asEngineErr(err, "loading session")
	}
	switch session.Status {
	case models.SessionInProgress:
	case models.SessionPending:
		return nil, validationf("cannot complete a workout that has not been started")
	default:
		return nil, validationf("workout is already %s", session.Status)
	}

	now := e.now()
	session.Status = models.SessionCompleted
	session.CompletedAt = &now
	if err := e.store.SaveSession(ctx, session, nil); err != nil {
		return nil, asEngineErr(err, "saving session")
	}

	e.log.Info("workout completed", "session_id", session.ID, "period", session.Period)
	return session, nil
}

// SkipSession skips a pending or in-progress session. Every still-pending
// set is forced to skipped; completed sets keep their logged values.
func (e *Engine) SkipSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	session, err := e.store.GetSession(ctx, id)
	if err != nil {
		return nil, asEngineErr(err, "loading session")
	}
	if session.Status.IsTerminal() {
		return nil, validationf("workout is already %s", session.Status)
	}

	sets, err := e.store.SessionSets(ctx, session.ID)
	if err != nil {
		return nil, asEngineErr(err, "loading sets")
	}
	var changed []models.Set
	for i := range sets {
		if sets[i].Status == models.SetPending {
			sets[i].Status = models.SetSkipped
			changed = append(changed, sets[i])
		}
	}

	now := e.now()
	session.Status = models.SessionSkipped
	session.CompletedAt = &now
	if err := e.store.SaveSession(ctx, session, changed); err != nil {
		return nil, asEngineErr(err, "saving session")
	}

	e.log.Info("workout skipped", "session_id", session.ID, "sets_skipped", len(changed))
	return session, nil
}

// exerciseProjection is one exercise's adaptive result for a session.
type exerciseProjection struct {
	Targets  progression.Targets
	Decision progression.Decision
}

// projectTargets computes adaptive targets per exercise from the immediately
// preceding period's logged performance. A preceding period with nothing
// logged yields the baseline, same as the first week.
func (e *Engine) projectTargets(ctx context.Context, session *models.Session) (map[uuid.UUID]exerciseProjection, error) {
	cfgs, err := e.store.PlanDayExercises(ctx, session.PlanDayID)
	if err != nil {
		return nil, asEngineErr(err, "loading plan day exercises")
	}

	deload := session.Period == progression.DeloadPeriod
	out := make(map[uuid.UUID]exerciseProjection, len(cfgs))
	for _, cfg := range cfgs {
		var prev *progression.Performance
		if session.Period > 1 {
			bests, err := e.store.BestSetsByPeriod(ctx, session.CycleID, session.PlanDayID, cfg.ExerciseID, session.Period)
			if err != nil {
				return nil, asEngineErr(err, "loading performance history")
			}
			prev = previousPerformance(bests, session.Period, cfg)
		}

		targets, decision := progression.Adaptive(baselineFrom(cfg), prev, deload)
		out[cfg.ExerciseID] = exerciseProjection{Targets: targets, Decision: decision}
	}
	return out, nil
}

// previousPerformance builds the adaptive-formula input from per-period best
// sets (newest first). The failure streak only walks consecutively logged
// periods ending at period-1.
func previousPerformance(bests []models.PeriodBest, period int, cfg models.PlanDayExercise) *progression.Performance {
	if len(bests) == 0 || bests[0].Period != period-1 {
		return nil
	}

	run := make([]progression.PeriodBest, 0, len(bests))
	next := period - 1
	for _, b := range bests {
		if b.Period != next {
			break
		}
		run = append(run, progression.PeriodBest{
			Period:       b.Period,
			ActualWeight: b.ActualWeight,
			ActualReps:   b.ActualReps,
			TargetReps:   b.TargetReps,
		})
		next--
	}

	minReps := cfg.MinReps
	if minReps <= 0 {
		minReps = progression.DefaultMinReps
	}

	return &progression.Performance{
		Weight:        run[0].ActualWeight,
		Reps:          run[0].ActualReps,
		TargetReps:    run[0].TargetReps,
		FailureStreak: progression.FailureStreak(run, minReps),
	}
}

func (e *Engine) bumpCurrentPeriod(ctx context.Context, session *models.Session) error {
	cycle, err := e.store.GetCycle(ctx, session.CycleID)
	if err != nil {
		return asEngineErr(err, "loading cycle")
	}
	if session.Period <= cycle.CurrentPeriod {
		return nil
	}
	cycle.CurrentPeriod = session.Period
	if err := e.store.UpdateCycle(ctx, cycle); err != nil {
		return asEngineErr(err, "updating cycle period")
	}
	return nil
}
