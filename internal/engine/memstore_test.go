package engine

import (
	"context"
	"sort"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
)

// memStore is an in-memory Store used by engine tests. It mirrors the
// Postgres implementation's sentinel errors and the single-active-cycle
// uniqueness guard.
type memStore struct {
	exercises map[uuid.UUID]models.Exercise
	plans     map[uuid.UUID]models.Plan
	cycles    map[uuid.UUID]models.Cycle
	sessions  map[uuid.UUID]models.Session
	sets      map[uuid.UUID]models.Set
}

func newMemStore() *memStore {
	return &memStore{
		exercises: make(map[uuid.UUID]models.Exercise),
		plans:     make(map[uuid.UUID]models.Plan),
		cycles:    make(map[uuid.UUID]models.Cycle),
		sessions:  make(map[uuid.UUID]models.Session),
		sets:      make(map[uuid.UUID]models.Set),
	}
}

func (m *memStore) GetExercise(_ context.Context, id uuid.UUID) (*models.Exercise, error) {
	ex, ok := m.exercises[id]
	if !ok {
		return nil, storage.ErrExerciseNotFound
	}
	return &ex, nil
}

func (m *memStore) GetPlan(_ context.Context, id uuid.UUID) (*models.Plan, error) {
	plan, ok := m.plans[id]
	if !ok {
		return nil, storage.ErrPlanNotFound
	}
	return &plan, nil
}

func (m *memStore) PlanDayExercises(_ context.Context, planDayID uuid.UUID) ([]models.PlanDayExercise, error) {
	for _, plan := range m.plans {
		for _, day := range plan.Days {
			if day.ID == planDayID {
				return append([]models.PlanDayExercise(nil), day.Exercises...), nil
			}
		}
	}
	return nil, storage.ErrPlanDayNotFound
}

func (m *memStore) GetPlanDayExercise(ctx context.Context, planDayID, exerciseID uuid.UUID) (*models.PlanDayExercise, error) {
	cfgs, err := m.PlanDayExercises(ctx, planDayID)
	if err != nil {
		return nil, err
	}
	for _, cfg := range cfgs {
		if cfg.ExerciseID == exerciseID {
			return &cfg, nil
		}
	}
	return nil, storage.ErrPlanDayNotFound
}

func (m *memStore) CreateCycle(_ context.Context, cycle *models.Cycle) error {
	m.cycles[cycle.ID] = *cycle
	return nil
}

func (m *memStore) GetCycle(_ context.Context, id uuid.UUID) (*models.Cycle, error) {
	c, ok := m.cycles[id]
	if !ok {
		return nil, storage.ErrCycleNotFound
	}
	return &c, nil
}

func (m *memStore) ActiveCycle(_ context.Context) (*models.Cycle, error) {
	for _, c := range m.cycles {
		if c.Status == models.CycleActive {
			c := c
			return &c, nil
		}
	}
	return nil, storage.ErrNoActiveCycle
}

func (m *memStore) UpdateCycle(_ context.Context, cycle *models.Cycle) error {
	if _, ok := m.cycles[cycle.ID]; !ok {
		return storage.ErrCycleNotFound
	}
	m.cycles[cycle.ID] = *cycle
	return nil
}

func (m *memStore) ActivateCycle(_ context.Context, cycleID uuid.UUID, sessions []models.Session, sets []models.Set) error {
	for id, c := range m.cycles {
		if id != cycleID && c.Status == models.CycleActive {
			return storage.ErrActiveCycleExists
		}
	}
	cycle, ok := m.cycles[cycleID]
	if !ok || cycle.Status != models.CyclePending {
		return storage.ErrCycleNotFound
	}
	for _, s := range sessions {
		m.sessions[s.ID] = s
	}
	for _, s := range sets {
		m.sets[s.ID] = s
	}
	cycle.Status = models.CycleActive
	cycle.CurrentPeriod = 1
	m.cycles[cycleID] = cycle
	return nil
}

func (m *memStore) GetSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memStore) CycleSessions(_ context.Context, cycleID uuid.UUID) ([]models.Session, error) {
	var out []models.Session
	for _, s := range m.sessions {
		if s.CycleID == cycleID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period < out[j].Period
		}
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})
	return out, nil
}

func (m *memStore) PendingSessions(_ context.Context, cycleID, planDayID uuid.UUID) ([]models.Session, error) {
	var out []models.Session
	for _, s := range m.sessions {
		if s.CycleID == cycleID && s.PlanDayID == planDayID && s.Status == models.SessionPending {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

func (m *memStore) SessionSets(_ context.Context, sessionID uuid.UUID) ([]models.Set, error) {
	var out []models.Set
	for _, s := range m.sets {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SetIndex < out[j].SetIndex })
	return out, nil
}

func (m *memStore) SaveSession(_ context.Context, session *models.Session, sets []models.Set) error {
	if _, ok := m.sessions[session.ID]; !ok {
		return storage.ErrSessionNotFound
	}
	m.sessions[session.ID] = *session
	for _, s := range sets {
		m.sets[s.ID] = s
	}
	return nil
}

func (m *memStore) GetSet(_ context.Context, id uuid.UUID) (*models.Set, error) {
	s, ok := m.sets[id]
	if !ok {
		return nil, storage.ErrSetNotFound
	}
	return &s, nil
}

func (m *memStore) ApplySetChanges(_ context.Context, upserts []models.Set, deleteIDs []uuid.UUID) error {
	for _, s := range upserts {
		m.sets[s.ID] = s
	}
	for _, id := range deleteIDs {
		delete(m.sets, id)
	}
	return nil
}

func (m *memStore) BestSetsByPeriod(_ context.Context, cycleID, planDayID, exerciseID uuid.UUID, beforePeriod int) ([]models.PeriodBest, error) {
	best := make(map[int]models.PeriodBest)
	for _, set := range m.sets {
		if set.Status != models.SetCompleted || set.ExerciseID != exerciseID {
			continue
		}
		session, ok := m.sessions[set.SessionID]
		if !ok || session.CycleID != cycleID || session.PlanDayID != planDayID || session.Period >= beforePeriod {
			continue
		}
		candidate := models.PeriodBest{
			Period:       session.Period,
			ActualWeight: *set.ActualWeight,
			ActualReps:   *set.ActualReps,
			TargetReps:   set.TargetReps,
		}
		cur, ok := best[session.Period]
		if !ok || candidate.ActualWeight > cur.ActualWeight ||
			(candidate.ActualWeight == cur.ActualWeight && candidate.ActualReps > cur.ActualReps) {
			best[session.Period] = candidate
		}
	}

	out := make([]models.PeriodBest, 0, len(best))
	for _, b := range best {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	return out, nil
}
