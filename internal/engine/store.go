package engine

import (
	"context"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
)

// Store abstracts the persistence layer for the scheduling engine.
// *storage.DB is the Postgres implementation; engine tests use an in-memory
// fake. Implementations report missing rows with the storage sentinel errors.
type Store interface {
	GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	PlanDayExercises(ctx context.Context, planDayID uuid.UUID) ([]models.PlanDayExercise, error)
	GetPlanDayExercise(ctx context.Context, planDayID, exerciseID uuid.UUID) (*models.PlanDayExercise, error)

	CreateCycle(ctx context.Context, cycle *models.Cycle) error
	GetCycle(ctx context.Context, id uuid.UUID) (*models.Cycle, error)
	ActiveCycle(ctx context.Context) (*models.Cycle, error)
	UpdateCycle(ctx context.Context, cycle *models.Cycle) error
	// ActivateCycle persists the full generated schedule and flips the cycle
	// to active in one transaction. A failure leaves the cycle pending with
	// no visible sessions.
	ActivateCycle(ctx context.Context, cycleID uuid.UUID, sessions []models.Session, sets []models.Set) error

	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	CycleSessions(ctx context.Context, cycleID uuid.UUID) ([]models.Session, error)
	PendingSessions(ctx context.Context, cycleID, planDayID uuid.UUID) ([]models.Session, error)
	SessionSets(ctx context.Context, sessionID uuid.UUID) ([]models.Set, error)
	// SaveSession updates the session row and upserts the given sets in one
	// transaction.
	SaveSession(ctx context.Context, session *models.Session, sets []models.Set) error

	GetSet(ctx context.Context, id uuid.UUID) (*models.Set, error)
	// ApplySetChanges upserts and deletes sets in one transaction.
	ApplySetChanges(ctx context.Context, upserts []models.Set, deleteIDs []uuid.UUID) error
	// BestSetsByPeriod returns the best completed set per period for the
	// given exercise on the given plan day, newest period first, covering
	// periods strictly before beforePeriod.
	BestSetsByPeriod(ctx context.Context, cycleID, planDayID, exerciseID uuid.UUID, beforePeriod int) ([]models.PeriodBest, error)
}
