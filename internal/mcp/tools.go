package mcp

import (
	"context"

	"github.com/claude/liftplan/internal/progression"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetActiveCycle = mcp.NewTool("get_active_cycle",
	mcp.WithDescription("Get the currently active mesocycle with all its scheduled workouts (period, date, status)."),
)

var toolGetCycle = mcp.NewTool("get_cycle",
	mcp.WithDescription("Get a mesocycle by ID with all its scheduled workouts."),
	mcp.WithString("cycle_id", mcp.Required(), mcp.Description("Cycle UUID")),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Get a scheduled workout with its sets. For a workout that has not been started, targets are the adaptive-progression projection of what starting it would prescribe."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Workout UUID")),
)

var toolPreviewProgression = mcp.NewTool("preview_progression",
	mcp.WithDescription("Compute next-period targets from a baseline and the previous period's best performance. Pure calculation, nothing is stored."),
	mcp.WithNumber("base_weight", mcp.Required(), mcp.Description("Baseline weight")),
	mcp.WithNumber("base_reps", mcp.Required(), mcp.Description("Baseline reps")),
	mcp.WithNumber("base_sets", mcp.Required(), mcp.Description("Baseline set count")),
	mcp.WithNumber("increment", mcp.Required(), mcp.Description("Minimum weight increment for the exercise")),
	mcp.WithNumber("min_reps", mcp.Description("Lower rep-range bound. Defaults to 8.")),
	mcp.WithNumber("max_reps", mcp.Description("Upper rep-range bound. Defaults to 12.")),
	mcp.WithNumber("prev_weight", mcp.Description("Previous period's best actual weight. Omit for a first week.")),
	mcp.WithNumber("prev_reps", mcp.Description("Actual reps at that weight")),
	mcp.WithNumber("prev_target_reps", mcp.Description("The reps that were prescribed")),
	mcp.WithNumber("failure_streak", mcp.Description("Consecutive periods below min_reps at this weight")),
	mcp.WithBoolean("deload", mcp.Description("Compute deload-period targets")),
)

// --- Tool handlers ---

func (h *handlers) getActiveCycle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, err := h.ds.ActiveCycle(ctx)
	if err != nil {
		return mcp.NewToolResultError("no active cycle: " + err.Error()), nil
	}
	return toolJSON(view)
}

func (h *handlers) getCycle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, result := requireUUID(req, "cycle_id")
	if result != nil {
		return result, nil
	}
	view, err := h.ds.Cycle(ctx, id)
	if err != nil {
		h.log.Error("mcp get_cycle", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(view)
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, result := requireUUID(req, "session_id")
	if result != nil {
		return result, nil
	}
	view, err := h.ds.Session(ctx, id)
	if err != nil {
		h.log.Error("mcp get_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(view)
}

func (h *handlers) previewProgression(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	baseWeight, err := req.RequireFloat("base_weight")
	if err != nil {
		return mcp.NewToolResultError("base_weight parameter is required"), nil
	}
	baseReps, err := req.RequireInt("base_reps")
	if err != nil {
		return mcp.NewToolResultError("base_reps parameter is required"), nil
	}
	baseSets, err := req.RequireInt("base_sets")
	if err != nil {
		return mcp.NewToolResultError("base_sets parameter is required"), nil
	}
	increment, err := req.RequireFloat("increment")
	if err != nil {
		return mcp.NewToolResultError("increment parameter is required"), nil
	}

	baseline := progression.Baseline{
		Weight:    baseWeight,
		Reps:      baseReps,
		Sets:      baseSets,
		Increment: increment,
		MinReps:   req.GetInt("min_reps", 0),
		MaxReps:   req.GetInt("max_reps", 0),
	}

	var prev *progression.Performance
	if prevWeight := req.GetFloat("prev_weight", -1); prevWeight >= 0 {
		prev = &progression.Performance{
			Weight:        prevWeight,
			Reps:          req.GetInt("prev_reps", 0),
			TargetReps:    req.GetInt("prev_target_reps", 0),
			FailureStreak: req.GetInt("failure_streak", 0),
		}
	}

	targets, decision := progression.Adaptive(baseline, prev, req.GetBool("deload", false))
	return toolJSON(map[string]any{
		"targets":  targets,
		"decision": decision,
	})
}

func requireUUID(req mcp.CallToolRequest, param string) (uuid.UUID, *mcp.CallToolResult) {
	raw, err := req.RequireString(param)
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError(param + " parameter is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("invalid " + param)
	}
	return id, nil
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
