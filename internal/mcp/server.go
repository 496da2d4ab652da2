package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("IronFlow", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("IronFlow training data server. Query exercise logs, workout plans, streaks, personal records, and achievement progress."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetExerciseLogs, Handler: h.getExerciseLogs},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
		server.ServerTool{Tool: toolGetStreak, Handler: h.getStreak},
		server.ServerTool{Tool: toolGetAchievements, Handler: h.getAchievements},
		server.ServerTool{Tool: toolSuggestOverload, Handler: h.suggestOverload},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetWorkoutPlans, Handler: h.getWorkoutPlans},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resProgressSummary, Handler: h.progressSummary},
		server.ServerResource{Resource: resBadgeCatalog, Handler: h.badgeCatalog},
		server.ServerResource{Resource: resPlanCatalog, Handler: h.planCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resProgressSummary = mcp.NewResource(
	"ironflow://progress_summary",
	"Progress Summary",
	mcp.WithResourceDescription("Current streak, last-7-day activity, lifetime totals, and per-exercise bests"),
	mcp.WithMIMEType("application/json"),
)

var resBadgeCatalog = mcp.NewResource(
	"ironflow://badge_catalog",
	"Badge Catalog",
	mcp.WithResourceDescription("All badge IDs with unlock status and timestamps"),
	mcp.WithMIMEType("application/json"),
)

var resPlanCatalog = mcp.NewResource(
	"ironflow://plan_catalog",
	"Plan Catalog",
	mcp.WithResourceDescription("All saved workout plans with their day and exercise structure"),
	mcp.WithMIMEType("application/json"),
)
