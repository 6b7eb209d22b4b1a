package mcp

import (
	"context"

	"github.com/claude/liftplan/internal/engine"
	"github.com/google/uuid"
)

// DataSource abstracts the engine's read surface for MCP tools.
type DataSource interface {
	ActiveCycle(ctx context.Context) (*engine.CycleView, error)
	Cycle(ctx context.Context, id uuid.UUID) (*engine.CycleView, error)
	Session(ctx context.Context, id uuid.UUID) (*engine.SessionView, error)
}

// Compile-time check: *engine.Engine satisfies DataSource.
var _ DataSource = (*engine.Engine)(nil)
