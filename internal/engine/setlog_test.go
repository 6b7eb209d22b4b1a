package engine

import (
	"context"
	"testing"

	"github.com/claude/liftplan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSetRejectsNegativeValues(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	sets, err := store.SessionSets(context.Background(), sessionFor(t, view, plan.Days[0].ID, 1).ID)
	require.NoError(t, err)

	_, err = e.LogSet(context.Background(), sets[0].ID, -1, 100)
	assert.Equal(t, KindValidation, KindOf(err))
	_, err = e.LogSet(context.Background(), sets[0].ID, 8, -5)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestLogSetAutoStartsSession(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	first := sessionFor(t, view, plan.Days[0].ID, 1)
	sets, err := store.SessionSets(context.Background(), first.ID)
	require.NoError(t, err)

	logged, err := e.LogSet(context.Background(), sets[0].ID, 9, 102.5)
	require.NoError(t, err)

	assert.Equal(t, models.SetCompleted, logged.Status)
	require.NotNil(t, logged.ActualReps)
	assert.Equal(t, 9, *logged.ActualReps)
	assert.Equal(t, 102.5, *logged.ActualWeight)

	session, err := store.GetSession(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionInProgress, session.Status)
	assert.NotNil(t, session.StartedAt)
}

func TestLogSetOnFinishedWorkout(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	first := sessionFor(t, view, plan.Days[0].ID, 1)
	sets, err := store.SessionSets(context.Background(), first.ID)
	require.NoError(t, err)

	logWorkout(t, e, store, first.ID, 8, 100)

	_, err = e.LogSet(context.Background(), sets[0].ID, 10, 100)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSkipSet(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	sets, err := store.SessionSets(context.Background(), sessionFor(t, view, plan.Days[0].ID, 1).ID)
	require.NoError(t, err)

	skipped, err := e.SkipSet(context.Background(), sets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.SetSkipped, skipped.Status)
	assert.Nil(t, skipped.ActualReps)
}

func TestUnlogSet(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	sets, err := store.SessionSets(context.Background(), sessionFor(t, view, plan.Days[0].ID, 1).ID)
	require.NoError(t, err)

	// Unlogging a set that was never logged is an error.
	_, err = e.UnlogSet(context.Background(), sets[0].ID)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = e.LogSet(context.Background(), sets[0].ID, 8, 100)
	require.NoError(t, err)

	reverted, err := e.UnlogSet(context.Background(), sets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.SetPending, reverted.Status)
	assert.Nil(t, reverted.ActualReps)
	assert.Nil(t, reverted.ActualWeight)
}

func TestAddSetCopiesLastTargets(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	push := plan.Days[0]
	benchID := push.Exercises[0].ExerciseID
	first := sessionFor(t, view, push.ID, 1)

	added, result, err := e.AddSet(context.Background(), first.ID, benchID)
	require.NoError(t, err)

	assert.Equal(t, 4, added.SetIndex)
	assert.Equal(t, 100.0, added.TargetWeight)
	assert.Equal(t, 8, added.TargetReps)
	assert.Equal(t, models.SetPending, added.Status)

	// Periods 2-6 each grow one set; the deload period stays at ceil(4/2)=2.
	assert.Equal(t, 5, result.SessionsUpdated)
	assert.Equal(t, 5, result.SetsModified)

	sets, err := store.SessionSets(context.Background(), sessionFor(t, view, push.ID, 4).ID)
	require.NoError(t, err)
	assert.Len(t, sets, 4)
	sets, err = store.SessionSets(context.Background(), sessionFor(t, view, push.ID, 7).ID)
	require.NoError(t, err)
	assert.Len(t, sets, 2)
}

func TestAddSetUnknownExercise(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	pullExercise := plan.Days[1].Exercises[0].ExerciseID
	first := sessionFor(t, view, plan.Days[0].ID, 1)

	_, _, err := e.AddSet(context.Background(), first.ID, pullExercise)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRemoveSetPropagatesReducedCount(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	push := plan.Days[0]
	benchID := push.Exercises[0].ExerciseID
	first := sessionFor(t, view, push.ID, 1)

	result, err := e.RemoveSet(context.Background(), first.ID, benchID)
	require.NoError(t, err)

	sets, err := store.SessionSets(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Len(t, sets, 2)

	// Periods 2-6 drop to 2 sets; the deload period drops to ceil(2/2)=1.
	assert.Equal(t, 6, result.SessionsUpdated)
	assert.Equal(t, 6, result.SetsModified)
}

func TestRemoveSetKeepsAtLeastOne(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	push := plan.Days[0]
	benchID := push.Exercises[0].ExerciseID
	deload := sessionFor(t, view, push.ID, 7)

	_, err := e.RemoveSet(context.Background(), deload.ID, benchID)
	require.NoError(t, err)

	_, err = e.RemoveSet(context.Background(), deload.ID, benchID)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRemoveSetNeverTouchesCompletedSets(t *testing.T) {
	e, store := newTestEngine()
	plan, view := startedCycle(t, e, store)
	push := plan.Days[0]
	benchID := push.Exercises[0].ExerciseID
	first := sessionFor(t, view, push.ID, 1)

	sets, err := store.SessionSets(context.Background(), first.ID)
	require.NoError(t, err)
	for _, s := range sets {
		_, err := e.LogSet(context.Background(), s.ID, 8, 100)
		require.NoError(t, err)
	}

	_, err = e.RemoveSet(context.Background(), first.ID, benchID)
	assert.Equal(t, KindValidation, KindOf(err))
}
