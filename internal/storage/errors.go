package storage

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrPlanDayNotFound  = errors.New("plan day not found")
	ErrCycleNotFound    = errors.New("cycle not found")
	ErrNoActiveCycle    = errors.New("no active cycle")
	ErrSessionNotFound  = errors.New("workout not found")
	ErrSetNotFound      = errors.New("set not found")

	// ErrActiveCycleExists surfaces the partial unique index on active
	// cycles, closing the check-then-act race between two activations.
	ErrActiveCycleExists = errors.New("an active cycle already exists")
)

// IsNotFound reports whether err is one of the missing-row sentinels.
func IsNotFound(err error) bool {
	for _, sentinel := range []error{
		ErrExerciseNotFound, ErrPlanNotFound, ErrPlanDayNotFound,
		ErrCycleNotFound, ErrNoActiveCycle, ErrSessionNotFound, ErrSetNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// isUniqueViolation reports a Postgres 23505 error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
