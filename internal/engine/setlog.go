package engine

import (
	"context"
	"sort"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
)

// LogSet records actual reps and weight for a set, marking it completed.
// Logging against a pending session starts the session as a side effect.
func (e *Engine) LogSet(ctx context.Context, setID uuid.UUID, reps int, weight float64) (*models.Set, error) {
	if reps < 0 || weight < 0 {
		return nil, validationf("reps and weight must not be negative")
	}

	set, session, err := e.setWithWritableSession(ctx, setID)
	if err != nil {
		return nil, err
	}

	e.autoStart(session)
	set.Status = models.SetCompleted
	set.ActualReps = &reps
	set.ActualWeight = &weight
	if err := e.store.SaveSession(ctx, session, []models.Set{*set}); err != nil {
		return nil, asEngineErr(err, "saving set")
	}

	e.log.Info("set logged", "set_id", set.ID, "reps", reps, "weight", weight)
	return set, nil
}

// SkipSet marks a set skipped, clearing any actual values.
func (e *Engine) SkipSet(ctx context.Context, setID uuid.UUID) (*models.Set, error) {
	set, session, err := e.setWithWritableSession(ctx, setID)
	if err != nil {
		return nil, err
	}

	e.autoStart(session)
	set.Status = models.SetSkipped
	set.ActualReps = nil
	set.ActualWeight = nil
	if err := e.store.SaveSession(ctx, session, []models.Set{*set}); err != nil {
		return nil, asEngineErr(err, "saving set")
	}
	return set, nil
}

// UnlogSet reverts a completed or skipped set to pending. Disallowed once
// the owning session is terminal.
func (e *Engine) UnlogSet(ctx context.Context, setID uuid.UUID) (*models.Set, error) {
	set, session, err := e.setWithWritableSession(ctx, setID)
	if err != nil {
		return nil, err
	}
	if set.Status == models.SetPending {
		return nil, validationf("set is not logged")
	}

	set.Status = models.SetPending
	set.ActualReps = nil
	set.ActualWeight = nil
	if err := e.store.SaveSession(ctx, session, []models.Set{*set}); err != nil {
		return nil, asEngineErr(err, "saving set")
	}
	return set, nil
}

// AddSet appends one set for an exercise in a non-terminal session, copying
// the targets of the highest-indexed existing set, then propagates the new
// set count into all still-pending future sessions of the cycle.
func (e *Engine) AddSet(ctx context.Context, sessionID, exerciseID uuid.UUID) (*models.Set, *PropagationResult, error) {
	session, exSets, err := e.editableExerciseSets(ctx, sessionID, exerciseID)
	if err != nil {
		return nil, nil, err
	}
	if len(exSets) == 0 {
		return nil, nil, validationf("exercise has no sets in this workout")
	}

	last := exSets[len(exSets)-1]
	newSet := models.Set{
		ID:           uuid.New(),
		SessionID:    sessionID,
		ExerciseID:   exerciseID,
		SetIndex:     last.SetIndex + 1,
		TargetReps:   last.TargetReps,
		TargetWeight: last.TargetWeight,
		Status:       models.SetPending,
	}
	if err := e.store.ApplySetChanges(ctx, []models.Set{newSet}, nil); err != nil {
		return nil, nil, asEngineErr(err, "adding set")
	}

	result, err := e.propagateSetCount(ctx, session, exerciseID, len(exSets)+1)
	if err != nil {
		return nil, nil, err
	}

	e.log.Info("set added", "session_id", sessionID, "exercise_id", exerciseID,
		"set_count", len(exSets)+1, "future_sessions", result.SessionsUpdated)
	return &newSet, result, nil
}

// RemoveSet removes the highest-indexed pending set for an exercise in a
// non-terminal session. Each exercise keeps at least one set, and completed
// sets are never removed.
func (e *Engine) RemoveSet(ctx context.Context, sessionID, exerciseID uuid.UUID) (*PropagationResult, error) {
	session, exSets, err := e.editableExerciseSets(ctx, sessionID, exerciseID)
	if err != nil {
		return nil, err
	}
	if len(exSets) <= 1 {
		return nil, validationf("cannot remove the last set for an exercise")
	}

	var victim *models.Set
	for i := len(exSets) - 1; i >= 0; i-- {
		if exSets[i].Status == models.SetPending {
			victim = &exSets[i]
			break
		}
	}
	if victim == nil {
		return nil, validationf("no pending set to remove")
	}

	if err := e.store.ApplySetChanges(ctx, nil, []uuid.UUID{victim.ID}); err != nil {
		return nil, asEngineErr(err, "removing set")
	}

	result, err := e.propagateSetCount(ctx, session, exerciseID, len(exSets)-1)
	if err != nil {
		return nil, err
	}

	e.log.Info("set removed", "session_id", sessionID, "exercise_id", exerciseID,
		"set_count", len(exSets)-1, "future_sessions", result.SessionsUpdated)
	return result, nil
}

// autoStart flips a pending session to in_progress, mirroring the start
// timestamp a regular StartSession would record. Target recalculation does
// not run here; logging against stored targets is an explicit choice to
// begin the workout as prescribed.
func (e *Engine) autoStart(session *models.Session) {
	if session.Status != models.SessionPending {
		return
	}
	now := e.now()
	session.Status = models.SessionInProgress
	session.StartedAt = &now
}

func (e *Engine) setWithWritableSession(ctx context.Context, setID uuid.UUID) (*models.Set, *models.Session, error) {
	set, err := e.store.GetSet(ctx, setID)
	if err != nil {
		return nil, nil, asEngineErr(err, "loading set")
	}
	session, err := e.store.GetSession(ctx, set.SessionID)
	if err != nil {
		return nil, nil, asEngineErr(err, "loading session")
	}
	if session.Status.IsTerminal() {
		return nil, nil, validationf("cannot modify sets on a %s workout", session.Status)
	}
	return set, session, nil
}

func (e *Engine) editableExerciseSets(ctx context.Context, sessionID, exerciseID uuid.UUID) (*models.Session, []models.Set, error) {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, asEngineErr(err, "loading session")
	}
	if session.Status.IsTerminal() {
		return nil, nil, validationf("cannot modify sets on a %s workout", session.Status)
	}

	sets, err := e.store.SessionSets(ctx, sessionID)
	if err != nil {
		return nil, nil, asEngineErr(err, "loading sets")
	}
	var exSets []models.Set
	for _, s := range sets {
		if s.ExerciseID == exerciseID {
			exSets = append(exSets, s)
		}
	}
	sort.Slice(exSets, func(i, j int) bool { return exSets[i].SetIndex < exSets[j].SetIndex })
	return session, exSets, nil
}
