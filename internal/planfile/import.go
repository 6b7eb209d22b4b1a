package planfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	PlansCreated     int
	ExercisesCreated int
	ExercisesReused  int
}

// Importer reads plan definition YAML files and inserts them into the
// database. Exercises are matched to the library by name; unknown names are
// created as custom exercises.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// processed unconditionally.
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, dryRun: dryRun}
}

// Import processes all .yaml/.yml files under dir.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return &imp.stats, err
	}
	more, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return &imp.stats, err
	}
	files = append(files, more...)

	for _, path := range files {
		if err := imp.importFile(ctx, path); err != nil {
			return &imp.stats, fmt.Errorf("importing %s: %w", filepath.Base(path), err)
		}
	}
	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var hash string
	if imp.state != nil {
		hash, err = HashFile(path)
		if err != nil {
			return err
		}
		done, err := imp.state.IsImported(filepath.Base(path), info.Size(), hash)
		if err != nil {
			return err
		}
		if done {
			imp.stats.FilesSkipped++
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	file, err := Parse(data)
	if err != nil {
		imp.log.Warn("invalid plan file", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	imp.stats.FilesProcessed++
	if imp.dryRun {
		imp.stats.PlansCreated++
		return nil
	}

	if err := imp.insertPlan(ctx, file); err != nil {
		return err
	}
	imp.stats.PlansCreated++

	if imp.state != nil {
		if err := imp.state.MarkImported(filepath.Base(path), info.Size(), hash); err != nil {
			return fmt.Errorf("recording import state: %w", err)
		}
	}

	imp.log.Info("plan imported", "plan", file.Name, "days", len(file.Days))
	return nil
}

func (imp *Importer) insertPlan(ctx context.Context, file *File) error {
	plan := models.Plan{
		ID:            uuid.New(),
		Name:          file.Name,
		DurationWeeks: file.DurationWeeks,
		CreatedAt:     time.Now(),
	}

	for i, day := range file.Days {
		planDay := models.PlanDay{
			ID:        uuid.New(),
			PlanID:    plan.ID,
			Weekday:   int(day.Weekday),
			Name:      day.Name,
			SortOrder: i,
		}
		for j, spec := range day.Exercises {
			ex, err := imp.resolveExercise(ctx, spec)
			if err != nil {
				return err
			}
			planDay.Exercises = append(planDay.Exercises, models.PlanDayExercise{
				ID:          uuid.New(),
				PlanDayID:   planDay.ID,
				ExerciseID:  ex.ID,
				Sets:        spec.Sets,
				Reps:        spec.Reps,
				Weight:      spec.Weight,
				RestSeconds: spec.RestSeconds,
				MinReps:     spec.MinReps,
				MaxReps:     spec.MaxReps,
				SortOrder:   j,
			})
		}
		plan.Days = append(plan.Days, planDay)
	}

	return imp.db.CreatePlan(ctx, &plan)
}

func (imp *Importer) resolveExercise(ctx context.Context, spec ExerciseSpec) (*models.Exercise, error) {
	ex, err := imp.db.FindExerciseByName(ctx, spec.Name)
	if err == nil {
		imp.stats.ExercisesReused++
		return ex, nil
	}
	if !errors.Is(err, storage.ErrExerciseNotFound) {
		return nil, err
	}

	ex = &models.Exercise{
		ID:              uuid.New(),
		Name:            spec.Name,
		WeightIncrement: spec.WeightIncrement,
		IsCustom:        true,
		CreatedAt:       time.Now(),
	}
	if err := imp.db.CreateExercise(ctx, ex); err != nil {
		return nil, err
	}
	imp.stats.ExercisesCreated++
	return ex, nil
}
