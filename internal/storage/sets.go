package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const setColumns = `id, session_id, exercise_id, set_index, target_reps, target_weight, actual_reps, actual_weight, status`

// GetSet retrieves a set by ID.
func (db *DB) GetSet(ctx context.Context, id uuid.UUID) (*models.Set, error) {
	var s models.Set
	err := db.Pool.QueryRow(ctx,
		`SELECT `+setColumns+` FROM sets WHERE id = $1`, id).
		Scan(&s.ID, &s.SessionID, &s.ExerciseID, &s.SetIndex, &s.TargetReps,
			&s.TargetWeight, &s.ActualReps, &s.ActualWeight, &s.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying set: %w", err)
	}
	return &s, nil
}

// SessionSets returns all sets of a session ordered by exercise and index.
func (db *DB) SessionSets(ctx context.Context, sessionID uuid.UUID) ([]models.Set, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+setColumns+` FROM sets
		 WHERE session_id = $1 ORDER BY exercise_id, set_index`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	var result []models.Set
	for rows.Next() {
		var s models.Set
		if err := rows.Scan(&s.ID, &s.SessionID, &s.ExerciseID, &s.SetIndex, &s.TargetReps,
			&s.TargetWeight, &s.ActualReps, &s.ActualWeight, &s.Status); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ApplySetChanges upserts and deletes sets in one transaction. Used by the
// add/remove-set flows and forward propagation.
func (db *DB) ApplySetChanges(ctx context.Context, upserts []models.Set, deleteIDs []uuid.UUID) error {
	if len(upserts) == 0 && len(deleteIDs) == 0 {
		return nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, set := range upserts {
		if err := upsertSet(ctx, tx, set); err != nil {
			return err
		}
	}
	for _, id := range deleteIDs {
		if _, err := tx.Exec(ctx, `DELETE FROM sets WHERE id = $1`, id); err != nil {
			return fmt.Errorf("deleting set: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// BestSetsByPeriod returns the best completed set per period for an exercise
// on a plan day, newest period first, for periods before beforePeriod. Best
// means highest actual weight, ties broken by higher actual reps.
func (db *DB) BestSetsByPeriod(ctx context.Context, cycleID, planDayID, exerciseID uuid.UUID, beforePeriod int) ([]models.PeriodBest, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT ON (s.period)
		        s.period, st.actual_weight, st.actual_reps, st.target_reps
		 FROM sets st
		 JOIN sessions s ON s.id = st.session_id
		 WHERE s.cycle_id = $1 AND s.plan_day_id = $2 AND st.exercise_id = $3
		   AND s.period < $4 AND st.status = 'completed'
		   AND st.actual_weight IS NOT NULL AND st.actual_reps IS NOT NULL
		 ORDER BY s.period DESC, st.actual_weight DESC, st.actual_reps DESC`,
		cycleID, planDayID, exerciseID, beforePeriod)
	if err != nil {
		return nil, fmt.Errorf("querying period bests: %w", err)
	}
	defer rows.Close()

	var result []models.PeriodBest
	for rows.Next() {
		var b models.PeriodBest
		if err := rows.Scan(&b.Period, &b.ActualWeight, &b.ActualReps, &b.TargetReps); err != nil {
			return nil, fmt.Errorf("scanning period best: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func upsertSet(ctx context.Context, tx pgx.Tx, set models.Set) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO sets (id, session_id, exercise_id, set_index, target_reps, target_weight, actual_reps, actual_weight, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		   target_reps = EXCLUDED.target_reps,
		   target_weight = EXCLUDED.target_weight,
		   actual_reps = EXCLUDED.actual_reps,
		   actual_weight = EXCLUDED.actual_weight,
		   status = EXCLUDED.status`,
		set.ID, set.SessionID, set.ExerciseID, set.SetIndex, set.TargetReps,
		set.TargetWeight, set.ActualReps, set.ActualWeight, set.Status)
	if err != nil {
		return fmt.Errorf("upserting set: %w", err)
	}
	return nil
}

