package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a library entry referenced by plan days. WeightIncrement is the
// smallest weight adjustment the lifter's equipment allows for this movement.
type Exercise struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	WeightIncrement float64   `json:"weight_increment"`
	IsCustom        bool      `json:"is_custom"`
	CreatedAt       time.Time `json:"created_at"`
}

// Plan is a reusable training plan definition. DurationWeeks is informational
// only; scheduling always runs in 7-period cycles.
type Plan struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	DurationWeeks int       `json:"duration_weeks"`
	CreatedAt     time.Time `json:"created_at"`
	Days          []PlanDay `json:"days,omitempty"`
}

// PlanDay is one recurring weekday within a plan.
type PlanDay struct {
	ID        uuid.UUID         `json:"id"`
	PlanID    uuid.UUID         `json:"plan_id"`
	Weekday   int               `json:"weekday"` // 0 = Sunday .. 6 = Saturday
	Name      string            `json:"name"`
	SortOrder int               `json:"sort_order"`
	Exercises []PlanDayExercise `json:"exercises,omitempty"`
}

// PlanDayExercise is the progression seed for one exercise on one plan day.
// ExerciseName and WeightIncrement are joined from the exercise library on
// reads and ignored on writes.
type PlanDayExercise struct {
	ID          uuid.UUID `json:"id"`
	PlanDayID   uuid.UUID `json:"plan_day_id"`
	ExerciseID  uuid.UUID `json:"exercise_id"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
	Weight      float64   `json:"weight"`
	RestSeconds int       `json:"rest_seconds"`
	MinReps     int       `json:"min_reps"`
	MaxReps     int       `json:"max_reps"`
	SortOrder   int       `json:"sort_order"`

	ExerciseName    string  `json:"exercise_name,omitempty"`
	WeightIncrement float64 `json:"weight_increment,omitempty"`
}
