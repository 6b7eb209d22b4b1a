package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateCycle inserts a pending cycle.
func (db *DB) CreateCycle(ctx context.Context, cycle *models.Cycle) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO cycles (id, plan_id, start_date, current_period, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		cycle.ID, cycle.PlanID, cycle.StartDate, cycle.CurrentPeriod, cycle.Status, cycle.CreatedAt)
	if isUniqueViolation(err) {
		return ErrActiveCycleExists
	}
	if err != nil {
		return fmt.Errorf("inserting cycle: %w", err)
	}
	return nil
}

// GetCycle retrieves a cycle by ID.
func (db *DB) GetCycle(ctx context.Context, id uuid.UUID) (*models.Cycle, error) {
	cycle, err := db.scanCycle(db.Pool.QueryRow(ctx,
		`SELECT id, plan_id, start_date, current_period, status, created_at, completed_at
		 FROM cycles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCycleNotFound
	}
	return cycle, err
}

// ActiveCycle retrieves the single active cycle, or ErrNoActiveCycle.
func (db *DB) ActiveCycle(ctx context.Context) (*models.Cycle, error) {
	cycle, err := db.scanCycle(db.Pool.QueryRow(ctx,
		`SELECT id, plan_id, start_date, current_period, status, created_at, completed_at
		 FROM cycles WHERE status = 'active'`))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveCycle
	}
	return cycle, err
}

// UpdateCycle updates a cycle's status, period counter and completion time.
func (db *DB) UpdateCycle(ctx context.Context, cycle *models.Cycle) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE cycles SET current_period = $1, status = $2, completed_at = $3 WHERE id = $4`,
		cycle.CurrentPeriod, cycle.Status, cycle.CompletedAt, cycle.ID)
	if isUniqueViolation(err) {
		return ErrActiveCycleExists
	}
	if err != nil {
		return fmt.Errorf("updating cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

// ActivateCycle writes the full generated schedule and flips the cycle to
// active, all inside one transaction. Inserts are sent in bounded-size
// batches; the status flip is the final statement, so a failure in any chunk
// rolls everything back and the cycle stays pending with no sessions.
func (db *DB) ActivateCycle(ctx context.Context, cycleID uuid.UUID, sessions []models.Session, sets []models.Set) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batches := buildScheduleBatches(sessions, sets)
	for i, batch := range batches {
		if err := sendBatch(ctx, tx, batch); err != nil {
			return fmt.Errorf("schedule chunk %d/%d: %w", i+1, len(batches), err)
		}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE cycles SET status = 'active', current_period = 1 WHERE id = $1 AND status = 'pending'`,
		cycleID)
	if isUniqueViolation(err) {
		return ErrActiveCycleExists
	}
	if err != nil {
		return fmt.Errorf("activating cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}

	return tx.Commit(ctx)
}

// buildScheduleBatches splits the session and set inserts into batches of at
// most batchChunkSize statements each.
func buildScheduleBatches(sessions []models.Session, sets []models.Set) []*pgx.Batch {
	var batches []*pgx.Batch
	batch := &pgx.Batch{}

	queue := func(query string, args ...any) {
		if batch.Len() >= batchChunkSize {
			batches = append(batches, batch)
			batch = &pgx.Batch{}
		}
		batch.Queue(query, args...)
	}

	for _, s := range sessions {
		queue(`INSERT INTO sessions (id, cycle_id, plan_day_id, period, scheduled_date, status)
		       VALUES ($1, $2, $3, $4, $5, $6)`,
			s.ID, s.CycleID, s.PlanDayID, s.Period, s.ScheduledDate, s.Status)
	}
	for _, s := range sets {
		queue(`INSERT INTO sets (id, session_id, exercise_id, set_index, target_reps, target_weight, status)
		       VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID, s.SessionID, s.ExerciseID, s.SetIndex, s.TargetReps, s.TargetWeight, s.Status)
	}

	if batch.Len() > 0 {
		batches = append(batches, batch)
	}
	return batches
}

func sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}
	return results.Close()
}

func (db *DB) scanCycle(row pgx.Row) (*models.Cycle, error) {
	var cycle models.Cycle
	err := row.Scan(&cycle.ID, &cycle.PlanID, &cycle.StartDate, &cycle.CurrentPeriod,
		&cycle.Status, &cycle.CreatedAt, &cycle.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning cycle: %w", err)
	}
	return &cycle, nil
}
