package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server exposing read-only views of the training
// schedule: the active cycle, individual cycles and workouts (with the same
// progression preview a lifter sees before starting), and a what-if
// progression calculator. All mutations stay on the REST API.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftPlan", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("LiftPlan training server. Inspect the active mesocycle, scheduled workouts with projected targets, and preview progression outcomes. Read-only."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetActiveCycle, Handler: h.getActiveCycle},
		server.ServerTool{Tool: toolGetCycle, Handler: h.getCycle},
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
		server.ServerTool{Tool: toolPreviewProgression, Handler: h.previewProgression},
	)

	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}
