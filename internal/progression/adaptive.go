package progression

import "math"

// Decision names the adaptive-formula branch that produced a target.
type Decision string

const (
	DecisionFirstWeek  Decision = "first_week"
	DecisionDeload     Decision = "deload"
	DecisionRegress    Decision = "regress"
	DecisionHitMaxReps Decision = "hit_max_reps"
	DecisionHitTarget  Decision = "hit_target"
	DecisionHold       Decision = "hold"
)

// Performance is the best logged result for an exercise in the period
// immediately before the one being targeted.
type Performance struct {
	Weight        float64 // best actual weight
	Reps          int     // actual reps at that weight
	TargetReps    int     // what the lifter was asked to hit
	FailureStreak int     // consecutive periods below MinReps at this weight
}

// deloadWeightStep is the granularity the 85% deload weight is rounded to.
const deloadWeightStep = 2.5

// Adaptive computes the next-period targets from the previous period's best
// performance. With no previous performance the baseline is used as-is.
func Adaptive(b Baseline, prev *Performance, deload bool) (Targets, Decision) {
	b = b.normalized()

	if prev == nil {
		return Targets{Weight: b.Weight, Reps: b.Reps, Sets: b.Sets}, DecisionFirstWeek
	}

	if deload {
		sets := int(math.Ceil(float64(b.Sets) * 0.5))
		if sets < 1 {
			sets = 1
		}
		return Targets{
			Weight: roundTo(prev.Weight*0.85, deloadWeightStep),
			Reps:   b.MinReps,
			Sets:   sets,
		}, DecisionDeload
	}

	switch {
	case prev.Reps >= b.MaxReps:
		return Targets{
			Weight: prev.Weight + b.Increment,
			Reps:   b.MinReps,
			Sets:   b.Sets,
		}, DecisionHitMaxReps

	case prev.Reps < b.MinReps && prev.FailureStreak >= 2:
		return Targets{
			Weight: math.Max(b.Weight, prev.Weight-b.Increment),
			Reps:   b.MinReps,
			Sets:   b.Sets,
		}, DecisionRegress

	case prev.Reps >= prev.TargetReps:
		reps := prev.TargetReps + 1
		if reps > b.MaxReps {
			reps = b.MaxReps
		}
		return Targets{Weight: prev.Weight, Reps: reps, Sets: b.Sets}, DecisionHitTarget

	case prev.Reps >= b.MinReps:
		return Targets{Weight: prev.Weight, Reps: prev.TargetReps, Sets: b.Sets}, DecisionHold

	default:
		// A single miss below the rep range holds the weight at the bottom of
		// the range; regression waits for a second consecutive miss.
		return Targets{Weight: prev.Weight, Reps: b.MinReps, Sets: b.Sets}, DecisionHold
	}
}

// FailureStreak counts consecutive periods, newest first, where the lifter
// stayed below minReps at the same weight as the most recent attempt. The
// walk stops at the first period with a different weight or reps at/above
// minReps. bests must be ordered by descending period with no gaps.
func FailureStreak(bests []PeriodBest, minReps int) int {
	if len(bests) == 0 {
		return 0
	}
	weight := bests[0].ActualWeight
	streak := 0
	for _, b := range bests {
		if b.ActualWeight != weight || b.ActualReps >= minReps {
			break
		}
		streak++
	}
	return streak
}

// PeriodBest mirrors models.PeriodBest without importing it, keeping this
// package dependency-free.
type PeriodBest struct {
	Period       int
	ActualWeight float64
	ActualReps   int
	TargetReps   int
}

func roundTo(x, step float64) float64 {
	return math.Round(x/step) * step
}
