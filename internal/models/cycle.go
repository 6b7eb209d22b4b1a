package models

import (
	"time"

	"github.com/google/uuid"
)

// CycleStatus is the lifecycle state of a mesocycle.
type CycleStatus string

const (
	CyclePending   CycleStatus = "pending"
	CycleActive    CycleStatus = "active"
	CycleCompleted CycleStatus = "completed"
	CycleCancelled CycleStatus = "cancelled"
)

// IsTerminal reports whether the cycle can no longer change.
func (s CycleStatus) IsTerminal() bool {
	return s == CycleCompleted || s == CycleCancelled
}

// Cycle is one 7-period mesocycle generated from a plan. A cycle is created
// pending (no sessions), becomes active atomically with full schedule
// generation, and ends completed or cancelled with all history preserved.
// At most one cycle is active at a time.
type Cycle struct {
	ID            uuid.UUID   `json:"id"`
	PlanID        uuid.UUID   `json:"plan_id"`
	StartDate     time.Time   `json:"start_date"`
	CurrentPeriod int         `json:"current_period"`
	Status        CycleStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
}

// SessionStatus is the lifecycle state of a scheduled workout.
type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionSkipped    SessionStatus = "skipped"
)

// IsTerminal reports whether the session can no longer be worked.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionSkipped
}

// Session is one scheduled workout: a (cycle, plan day, period) slot.
type Session struct {
	ID            uuid.UUID     `json:"id"`
	CycleID       uuid.UUID     `json:"cycle_id"`
	PlanDayID     uuid.UUID     `json:"plan_day_id"`
	Period        int           `json:"period"` // 1..7; 7 is the deload period
	ScheduledDate time.Time     `json:"scheduled_date"`
	Status        SessionStatus `json:"status"`
	StartedAt     *time.Time    `json:"started_at,omitempty"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// SetStatus is the state of a single prescribed set.
type SetStatus string

const (
	SetPending   SetStatus = "pending"
	SetCompleted SetStatus = "completed"
	SetSkipped   SetStatus = "skipped"
)

// Set is one prescribed unit of work within a session. SetIndex is unique per
// (session, exercise). Actuals are nil until the set is logged.
type Set struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	ExerciseID   uuid.UUID `json:"exercise_id"`
	SetIndex     int       `json:"set_index"`
	TargetReps   int       `json:"target_reps"`
	TargetWeight float64   `json:"target_weight"`
	ActualReps   *int      `json:"actual_reps,omitempty"`
	ActualWeight *float64  `json:"actual_weight,omitempty"`
	Status       SetStatus `json:"status"`
}

// PeriodBest is the best completed set for one exercise in one period:
// highest actual weight, ties broken by higher actual reps. It is derived
// from logged sets, never stored.
type PeriodBest struct {
	Period       int     `json:"period"`
	ActualWeight float64 `json:"actual_weight"`
	ActualReps   int     `json:"actual_reps"`
	TargetReps   int     `json:"target_reps"`
}
