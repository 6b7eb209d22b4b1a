package engine

import (
	"errors"
	"fmt"

	"github.com/claude/liftplan/internal/storage"
)

// Kind classifies engine failures so the transport layer can map them to a
// stable external vocabulary without inspecting message text.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
)

// Error is a typed engine failure.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind from an error chain. Storage-level
// missing-row and active-uniqueness sentinels are folded into the taxonomy;
// anything else returns the empty Kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if storage.IsNotFound(err) {
		return KindNotFound
	}
	if errors.Is(err, storage.ErrActiveCycleExists) {
		return KindConflict
	}
	return ""
}

// asEngineErr re-raises storage sentinels as typed engine failures and passes
// everything else through wrapped.
func asEngineErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case storage.IsNotFound(err):
		return &Error{Kind: KindNotFound, Message: err.Error(), cause: err}
	case errors.Is(err, storage.ErrActiveCycleExists):
		return &Error{Kind: KindConflict, Message: "another cycle is already active", cause: err}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
