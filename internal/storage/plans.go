package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreatePlan inserts a plan with all its days and day exercises in one
// transaction.
func (db *DB) CreatePlan(ctx context.Context, plan *models.Plan) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO plans (id, name, duration_weeks, created_at) VALUES ($1, $2, $3, $4)`,
		plan.ID, plan.Name, plan.DurationWeeks, plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for _, day := range plan.Days {
		_, err = tx.Exec(ctx,
			`INSERT INTO plan_days (id, plan_id, weekday, name, sort_order)
			 VALUES ($1, $2, $3, $4, $5)`,
			day.ID, plan.ID, day.Weekday, day.Name, day.SortOrder)
		if err != nil {
			return fmt.Errorf("inserting plan day: %w", err)
		}
		for _, pde := range day.Exercises {
			_, err = tx.Exec(ctx,
				`INSERT INTO plan_day_exercises
				 (id, plan_day_id, exercise_id, sets, reps, weight, rest_seconds, min_reps, max_reps, sort_order)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				pde.ID, day.ID, pde.ExerciseID, pde.Sets, pde.Reps, pde.Weight,
				pde.RestSeconds, pde.MinReps, pde.MaxReps, pde.SortOrder)
			if err != nil {
				return fmt.Errorf("inserting plan day exercise: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// GetPlan retrieves a plan with its ordered days and day exercises.
func (db *DB) GetPlan(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, duration_weeks, created_at FROM plans WHERE id = $1`, id).
		Scan(&plan.ID, &plan.Name, &plan.DurationWeeks, &plan.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT id, plan_id, weekday, name, sort_order
		 FROM plan_days WHERE plan_id = $1 ORDER BY sort_order`, id)
	if err != nil {
		return nil, fmt.Errorf("querying plan days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day models.PlanDay
		if err := rows.Scan(&day.ID, &day.PlanID, &day.Weekday, &day.Name, &day.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning plan day: %w", err)
		}
		plan.Days = append(plan.Days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plan.Days {
		exercises, err := db.PlanDayExercises(ctx, plan.Days[i].ID)
		if err != nil {
			return nil, err
		}
		plan.Days[i].Exercises = exercises
	}
	return &plan, nil
}

// ListPlans returns all plans without their day details.
func (db *DB) ListPlans(ctx context.Context) ([]models.Plan, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, duration_weeks, created_at FROM plans ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []models.Plan
	for rows.Next() {
		var plan models.Plan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.DurationWeeks, &plan.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		result = append(result, plan)
	}
	return result, rows.Err()
}

// DeletePlan removes a plan; days and day exercises cascade.
func (db *DB) DeletePlan(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// PlanDayExercises returns a day's exercises in order, joined with the
// exercise name and weight increment.
func (db *DB) PlanDayExercises(ctx context.Context, planDayID uuid.UUID) ([]models.PlanDayExercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT pde.id, pde.plan_day_id, pde.exercise_id, pde.sets, pde.reps, pde.weight,
		        pde.rest_seconds, pde.min_reps, pde.max_reps, pde.sort_order,
		        e.name, e.weight_increment
		 FROM plan_day_exercises pde
		 JOIN exercises e ON e.id = pde.exercise_id
		 WHERE pde.plan_day_id = $1
		 ORDER BY pde.sort_order`, planDayID)
	if err != nil {
		return nil, fmt.Errorf("querying plan day exercises: %w", err)
	}
	defer rows.Close()

	var result []models.PlanDayExercise
	for rows.Next() {
		var pde models.PlanDayExercise
		if err := rows.Scan(&pde.ID, &pde.PlanDayID, &pde.ExerciseID, &pde.Sets, &pde.Reps,
			&pde.Weight, &pde.RestSeconds, &pde.MinReps, &pde.MaxReps, &pde.SortOrder,
			&pde.ExerciseName, &pde.WeightIncrement); err != nil {
			return nil, fmt.Errorf("scanning plan day exercise: %w", err)
		}
		result = append(result, pde)
	}
	return result, rows.Err()
}

// GetPlanDayExercise retrieves the configuration for one exercise on one
// plan day.
func (db *DB) GetPlanDayExercise(ctx context.Context, planDayID, exerciseID uuid.UUID) (*models.PlanDayExercise, error) {
	var pde models.PlanDayExercise
	err := db.Pool.QueryRow(ctx,
		`SELECT pde.id, pde.plan_day_id, pde.exercise_id, pde.sets, pde.reps, pde.weight,
		        pde.rest_seconds, pde.min_reps, pde.max_reps, pde.sort_order,
		        e.name, e.weight_increment
		 FROM plan_day_exercises pde
		 JOIN exercises e ON e.id = pde.exercise_id
		 WHERE pde.plan_day_id = $1 AND pde.exercise_id = $2`, planDayID, exerciseID).
		Scan(&pde.ID, &pde.PlanDayID, &pde.ExerciseID, &pde.Sets, &pde.Reps,
			&pde.Weight, &pde.RestSeconds, &pde.MinReps, &pde.MaxReps, &pde.SortOrder,
			&pde.ExerciseName, &pde.WeightIncrement)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan day exercise: %w", err)
	}
	return &pde, nil
}

// UpdatePlanDayExercise updates one exercise's baseline configuration on a
// plan day.
func (db *DB) UpdatePlanDayExercise(ctx context.Context, pde *models.PlanDayExercise) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE plan_day_exercises
		 SET sets = $1, reps = $2, weight = $3, rest_seconds = $4,
		     min_reps = $5, max_reps = $6, sort_order = $7
		 WHERE id = $8`,
		pde.Sets, pde.Reps, pde.Weight, pde.RestSeconds,
		pde.MinReps, pde.MaxReps, pde.SortOrder, pde.ID)
	if err != nil {
		return fmt.Errorf("updating plan day exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanDayNotFound
	}
	return nil
}
