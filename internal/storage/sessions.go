package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, cycle_id, plan_day_id, period, scheduled_date, status, started_at, completed_at`

// GetSession retrieves a session by ID.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var s models.Session
	err := db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.CycleID, &s.PlanDayID, &s.Period, &s.ScheduledDate,
			&s.Status, &s.StartedAt, &s.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}

// CycleSessions returns all sessions of a cycle ordered by schedule.
func (db *DB) CycleSessions(ctx context.Context, cycleID uuid.UUID) ([]models.Session, error) {
	return db.querySessions(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE cycle_id = $1 ORDER BY period, scheduled_date`, cycleID)
}

// PendingSessions returns a cycle's not-yet-started sessions for one plan
// day, ordered by period.
func (db *DB) PendingSessions(ctx context.Context, cycleID, planDayID uuid.UUID) ([]models.Session, error) {
	return db.querySessions(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE cycle_id = $1 AND plan_day_id = $2 AND status = 'pending'
		 ORDER BY period`, cycleID, planDayID)
}

// SaveSession updates the session row and upserts the given sets in one
// transaction.
func (db *DB) SaveSession(ctx context.Context, session *models.Session, sets []models.Set) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE sessions SET status = $1, started_at = $2, completed_at = $3 WHERE id = $4`,
		session.Status, session.StartedAt, session.CompletedAt, session.ID)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	for _, set := range sets {
		if err := upsertSet(ctx, tx, set); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (db *DB) querySessions(ctx context.Context, query string, args ...any) ([]models.Session, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.CycleID, &s.PlanDayID, &s.Period, &s.ScheduledDate,
			&s.Status, &s.StartedAt, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
