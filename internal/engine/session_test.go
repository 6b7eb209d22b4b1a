package engine

import (
	"context"
	"testing"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/progression"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logWorkout logs every set of a session at the given actuals and completes it.
func logWorkout(t *testing.T, e *Engine, store *memStore, sessionID uuid.UUID, reps int, weight float64) {
	t.Helper()
	sets, err := store.SessionSets(context.Background(), sessionID)
	require.NoError(t, err)
	for _, s := range sets {
		_, err := e.LogSet(context.Background(), s.ID, reps, weight)
		require.NoError(t, err)
	}
	_, err = e.CompleteSession(context.Background(), sessionID)
	require.NoError(t, err)
}

func TestSessionViewProjectsWithoutPersisting(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	push := plan.Days[0]
	benchID := push.Exercises[0].ExerciseID

	// Period 1 done at max reps: period 2 should project a weight bump.
	logWorkout(t, e, store, sessionFor(t, view, push.ID, 1).ID, 12, 100)

	next := sessionFor(t, view, push.ID, 2)
	got, err := e.Session(context.Background(), next.ID)
	require.NoError(t, err)

	assert.True(t, got.Projected)
	assert.Equal(t, progression.DecisionHitMaxReps, got.Decisions[benchID.String()])
	for _, s := range got.Sets {
		assert.Equal(t, 105.0, s.TargetWeight)
		assert.Equal(t, 8, s.TargetReps)
	}

	// Nothing was written; the stored sets still carry the seeded targets.
	stored, err := store.SessionSets(context.Background(), next.ID)
	require.NoError(t, err)
	for _, s := range stored {
		assert.Equal(t, 100.0, s.TargetWeight)
	}
}

func TestSessionViewNonPendingReturnsStoredTargets(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	push := plan.Days[0]

	first := sessionFor(t, view, push.ID, 1)
	_, err := e.StartSession(context.Background(), first.ID)
	require.NoError(t, err)

	got, err := e.Session(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, got.Projected)
	assert.Empty(t, got.Decisions)
}

func TestStartSessionPersistsAdaptiveTargets(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	push := plan.Days[0]

	// Hit the target exactly in period 1: period 2 asks for one more rep at
	// the same weight.
	logWorkout(t, e, store, sessionFor(t, view, push.ID, 1).ID, 8, 100)

	next := sessionFor(t, view, push.ID, 2)
	started, err := e.StartSession(context.Background(), next.ID)
	require.NoError(t, err)

	assert.Equal(t, models.SessionInProgress, started.Session.Status)
	require.NotNil(t, started.Session.StartedAt)

	stored, err := store.SessionSets(context.Background(), next.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for _, s := range stored {
		assert.Equal(t, 100.0, s.TargetWeight)
		assert.Equal(t, 9, s.TargetReps)
	}

	cycle, err := store.GetCycle(context.Background(), next.CycleID)
	require.NoError(t, err)
	assert.Equal(t, 2, cycle.CurrentPeriod)
}

func TestStartSessionSkippedPriorPeriodFallsBackToBaseline(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	push := plan.Days[0]

	// Nothing logged in period 1 at all.
	_, err := e.SkipSession(context.Background(), sessionFor(t, view, push.ID, 1).ID)
	require.NoError(t, err)

	got, err := e.Session(context.Background(), sessionFor(t, view, push.ID, 2).ID)
	require.NoError(t, err)
	benchID := push.Exercises[0].ExerciseID.String()
	assert.Equal(t, progression.DecisionFirstWeek, got.Decisions[benchID])
	for _, s := range got.Sets {
		assert.Equal(t, 100.0, s.TargetWeight)
		assert.Equal(t, 8, s.TargetReps)
	}
}

func TestStartSessionOnlyFromPending(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	first := sessionFor(t, view, plan.Days[0].ID, 1)

	_, err := e.StartSession(context.Background(), first.ID)
	require.NoError(t, err)

	_, err = e.StartSession(context.Background(), first.ID)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCompleteSessionRequiresStart(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	first := sessionFor(t, view, plan.Days[0].ID, 1)

	_, err := e.CompleteSession(context.Background(), first.ID)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = e.StartSession(context.Background(), first.ID)
	require.NoError(t, err)
	done, err := e.CompleteSession(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
}

func TestSkipSessionOnlySkipsPendingSets(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	first := sessionFor(t, view, plan.Days[0].ID, 1)

	sets, err := store.SessionSets(context.Background(), first.ID)
	require.NoError(t, err)
	logged, err := e.LogSet(context.Background(), sets[0].ID, 8, 100)
	require.NoError(t, err)

	skipped, err := e.SkipSession(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionSkipped, skipped.Status)

	after, err := store.SessionSets(context.Background(), first.ID)
	require.NoError(t, err)
	for _, s := range after {
		if s.ID == logged.ID {
			assert.Equal(t, models.SetCompleted, s.Status)
		} else {
			assert.Equal(t, models.SetSkipped, s.Status)
		}
	}

	_, err = e.SkipSession(context.Background(), first.ID)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestStartSessionRegressAfterConsecutiveFailures(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	push := plan.Days[0]

	// Two straight periods below the rep floor at the same weight.
	logWorkout(t, e, store, sessionFor(t, view, push.ID, 1).ID, 6, 105)
	logWorkout(t, e, store, sessionFor(t, view, push.ID, 2).ID, 6, 105)

	got, err := e.Session(context.Background(), sessionFor(t, view, push.ID, 3).ID)
	require.NoError(t, err)
	benchID := push.Exercises[0].ExerciseID.String()
	assert.Equal(t, progression.DecisionRegress, got.Decisions[benchID])
	for _, s := range got.Sets {
		assert.Equal(t, 100.0, s.TargetWeight)
	}
}
