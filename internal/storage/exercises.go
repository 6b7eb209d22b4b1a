package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateExercise inserts a new exercise library entry.
func (db *DB) CreateExercise(ctx context.Context, ex *models.Exercise) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, weight_increment, is_custom, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		ex.ID, ex.Name, ex.WeightIncrement, ex.IsCustom, ex.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves an exercise by ID.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	var ex models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, weight_increment, is_custom, created_at
		 FROM exercises WHERE id = $1`, id).
		Scan(&ex.ID, &ex.Name, &ex.WeightIncrement, &ex.IsCustom, &ex.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return &ex, nil
}

// FindExerciseByName retrieves an exercise by its exact name.
func (db *DB) FindExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	var ex models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, weight_increment, is_custom, created_at
		 FROM exercises WHERE name = $1`, name).
		Scan(&ex.ID, &ex.Name, &ex.WeightIncrement, &ex.IsCustom, &ex.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise by name: %w", err)
	}
	return &ex, nil
}

// ListExercises returns the whole exercise library ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, weight_increment, is_custom, created_at
		 FROM exercises ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.WeightIncrement, &ex.IsCustom, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}

// UpdateExercise updates an exercise's mutable fields.
func (db *DB) UpdateExercise(ctx context.Context, ex *models.Exercise) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE exercises SET name = $1, weight_increment = $2, is_custom = $3 WHERE id = $4`,
		ex.Name, ex.WeightIncrement, ex.IsCustom, ex.ID)
	if err != nil {
		return fmt.Errorf("updating exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// DeleteExercise removes an exercise from the library.
func (db *DB) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}
