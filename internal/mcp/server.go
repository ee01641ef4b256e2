package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout tracking server. Query workout sessions, profile statistics, streaks, achievements, exercise catalogs, and per-exercise leaderboards. All session data is scoped to the configured user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetProfileStats, Handler: h.getProfileStats},
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
		server.ServerTool{Tool: toolGetLeaderboard, Handler: h.getLeaderboard},
		server.ServerTool{Tool: toolListCategories, Handler: h.listCategories},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resProfileSummary, Handler: h.profileSummary},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resProfileSummary = mcp.NewResource(
	"liftlog://profile_summary",
	"Profile Summary",
	mcp.WithResourceDescription("Aggregate training statistics, recent workouts, and achievement progress"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"liftlog://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All exercise categories with their exercises"),
	mcp.WithMIMEType("application/json"),
)
