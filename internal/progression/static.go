// Package progression computes per-period training targets. The static
// formula seeds a whole cycle from a plan baseline; the adaptive formula
// revises one period's targets from the previous period's logged performance.
// Both are pure functions so the preview and persist paths cannot drift.
package progression

// A cycle always spans 7 periods; the last one is the deload period.
const (
	PeriodsPerCycle = 7
	DeloadPeriod    = 7
)

// Rep-range bounds applied when a plan day exercise does not set its own.
const (
	DefaultMinReps = 8
	DefaultMaxReps = 12
)

// Baseline is the progression seed for one exercise on one plan day.
type Baseline struct {
	Weight    float64
	Reps      int
	Sets      int
	Increment float64
	MinReps   int
	MaxReps   int
}

// normalized fills in default rep-range bounds.
func (b Baseline) normalized() Baseline {
	if b.MinReps <= 0 {
		b.MinReps = DefaultMinReps
	}
	if b.MaxReps <= 0 {
		b.MaxReps = DefaultMaxReps
	}
	return b
}

// Targets is a prescription for one exercise in one period.
type Targets struct {
	Weight float64
	Reps   int
	Sets   int
}

// Static computes the seed targets for the given period (1..7) when a cycle
// is generated. Weight climbs by one increment every second period, reps
// alternate one up on odd periods after the first, and the deload period
// halves volume (rounding up) and drops back to the baseline weight.
func Static(b Baseline, period int) Targets {
	b = b.normalized()

	if period >= DeloadPeriod {
		return Targets{
			Weight: b.Weight,
			Reps:   b.Reps,
			Sets:   ceilDiv(b.Sets, 2),
		}
	}

	reps := b.Reps
	if period > 1 && period%2 == 1 {
		reps++
	}

	return Targets{
		Weight: b.Weight + b.Increment*float64(period/2),
		Reps:   reps,
		Sets:   b.Sets,
	}
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
