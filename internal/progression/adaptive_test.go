package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptiveFirstWeek(t *testing.T) {
	b := Baseline{Weight: 100, Reps: 8, Sets: 3, Increment: 5, MinReps: 8, MaxReps: 12}

	got, decision := Adaptive(b, nil, false)

	assert.Equal(t, DecisionFirstWeek, decision)
	assert.Equal(t, Targets{Weight: 100, Reps: 8, Sets: 3}, got)
}

func TestAdaptiveHitMaxReps(t *testing.T) {
	// Previous period best = 105 lb x 12 reps with maxReps=12: weight moves
	// up by one increment and reps drop to the bottom of the range.
	b := Baseline{Weight: 100, Reps: 8, Sets: 3, Increment: 5, MinReps: 8, MaxReps: 12}
	prev := &Performance{Weight: 105, Reps: 12, TargetReps: 9}

	got, decision := Adaptive(b, prev, false)

	assert.Equal(t, DecisionHitMaxReps, decision)
	assert.Equal(t, Targets{Weight: 110, Reps: 8, Sets: 3}, got)
}

func TestAdaptiveHitMaxRepsIgnoresTargetReps(t *testing.T) {
	// hit_max_reps fires on actual reps alone, even past the target.
	b := Baseline{Weight: 100, Reps: 8, Sets: 3, Increment: 5, MinReps: 8, MaxReps: 12}
	prev := &Performance{Weight: 105, Reps: 14, TargetReps: 12}

	_, decision := Adaptive(b, prev, false)
	assert.Equal(t, DecisionHitMaxReps, decision)
}

func TestAdaptiveHitTarget(t *testing.T) {
	b := Baseline{Weight: 100, Reps: 8, Sets: 3, Increment: 5, MinReps: 8, MaxReps: 12}
	prev := &Performance{Weight: 105, Reps: 9, TargetReps: 9}

	got, decision := Adaptive(b, prev, false)

	assert.Equal(t, DecisionHitTarget, decision)
	assert.Equal(t, Targets{Weight: 105, Reps: 10, Sets: 3}, got)
}

func TestAdaptiveHitTargetCapsAtMaxReps(t *testing.T) {
	b := Baseline{Weight: 100, Reps: 8, Sets: 3, Increment: 5, MinReps: 8, MaxReps: 12}
	prev := &Performance{Weight: 105, Reps: 11, TargetReps: 11}

	got, decision := Adaptive(b, prev, false)

	assert.Equal(t, DecisionHitTarget, decision)
	assert.Equal(t, 12, got.Reps)
}

func TestAdaptiveHold(t *testing.T) {
	// Reps inside the range but short of target: repeat weight and target.
	b := Baseline{Weight: 100, Reps: 8, Sets: 3, Increment: 5, MinReps: 8, MaxReps: 12}
	prev := &Performance{Weight: 105, Reps: 8, TargetReps: 10}

	got, decision := Adaptive(b, prev, false)

	assert.Equal(t, DecisionHold, decision)
	assert.Equal(t, Targets{Weight: 105, Reps: 10, Sets: 3}, got)
}

func TestAdaptiveSingleFailureHolds(t *testing.T) {
	// One period below minReps is not enough to regress.
	b := Baseline{Weight: 100, Reps: 8, Sets: 3, Increment: 5, MinReps: 6, MaxReps: 10}
	prev := &Performance{Weight: 100, Reps: 5, TargetReps: 8, FailureStreak: 1}

	got, decision := Adaptive(b, prev, false)

	assert.Equal(t, DecisionHold, decision)
	assert.Equal(t, Targets{Weight: 100, Reps: 6, Sets: 3}, got)
}

func TestAdaptiveRegressAfterTwoFailures(t *testing.T) {
	// Two consecutive periods of 100 lb x 5 with minReps=6: drop one
	// increment, floored at the baseline weight.
	b := Baseline{Weight: 90, Reps: 8, Sets: 3, Increment: 5, MinReps: 6, MaxReps: 10}
	prev := &Performance{Weight: 100, Reps: 5, TargetReps: 8, FailureStreak: 2}

	got, decision := Adaptive(b, prev, false)

	assert.Equal(t, DecisionRegress, decision)
	assert.Equal(t, Targets{Weight: 95, Reps: 6, Sets: 3}, got)
}

func TestAdaptiveRegressFlooredAtBaseline(t *testing.T) {
	b := Baseline{Weight: 100, Reps: 8, Sets: 3, Increment: 5, MinReps: 6, MaxReps: 10}
	prev := &Performance{Weight: 102.5, Reps: 4, TargetReps: 8, FailureStreak: 3}

	got, decision := Adaptive(b, prev, false)

	assert.Equal(t, DecisionRegress, decision)
	assert.Equal(t, 100.0, got.Weight)
}

func TestAdaptiveDeload(t *testing.T) {
	b := Baseline{Weight: 100, Reps: 8, Sets: 3, Increment: 5, MinReps: 8, MaxReps: 12}
	prev := &Performance{Weight: 115, Reps: 9, TargetReps: 9}

	got, decision := Adaptive(b, prev, true)

	require.Equal(t, DecisionDeload, decision)
	// 115 * 0.85 = 97.75, rounded to the nearest 2.5.
	assert.Equal(t, 97.5, got.Weight)
	assert.Equal(t, 8, got.Reps)
	assert.Equal(t, 2, got.Sets)
}

func TestAdaptiveDeloadSetFloor(t *testing.T) {
	b := Baseline{Weight: 100, Reps: 8, Sets: 1, Increment: 5, MinReps: 8, MaxReps: 12}
	prev := &Performance{Weight: 100, Reps: 8, TargetReps: 8}

	got, _ := Adaptive(b, prev, true)
	assert.Equal(t, 1, got.Sets)
}

func TestFailureStreak(t *testing.T) {
	tests := []struct {
		name    string
		bests   []PeriodBest
		minReps int
		want    int
	}{
		{
			name: "two consecutive misses at same weight",
			bests: []PeriodBest{
				{Period: 4, ActualWeight: 100, ActualReps: 5},
				{Period: 3, ActualWeight: 100, ActualReps: 5},
				{Period: 2, ActualWeight: 100, ActualReps: 8},
			},
			minReps: 6,
			want:    2,
		},
		{
			name: "weight change breaks the streak",
			bests: []PeriodBest{
				{Period: 4, ActualWeight: 100, ActualReps: 5},
				{Period: 3, ActualWeight: 95, ActualReps: 4},
			},
			minReps: 6,
			want:    1,
		},
		{
			name: "met minReps means no streak",
			bests: []PeriodBest{
				{Period: 3, ActualWeight: 100, ActualReps: 8},
				{Period: 2, ActualWeight: 100, ActualReps: 4},
			},
			minReps: 6,
			want:    0,
		},
		{
			name:    "no history",
			bests:   nil,
			minReps: 6,
			want:    0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FailureStreak(tc.bests, tc.minReps))
		})
	}
}
