package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/liftrecap/internal/models"
)

// New creates an MCP server with all tools and resources registered.
// units is used when a tool call does not ask for specific units.
func New(src Source, units models.Units, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftrecap", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftrecap summarises a Strong workout CSV export into a yearly recap: totals, top exercises, body part split, personal bests and week streaks. Years default to the latest year in the export."),
	)

	if units == "" {
		units = models.DefaultUnits
	}
	h := &handlers{src: src, units: units, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetYearStats, Handler: h.getYearStats},
		server.ServerTool{Tool: toolListYears, Handler: h.listYears},
		server.ServerTool{Tool: toolGetTopExercises, Handler: h.getTopExercises},
		server.ServerTool{Tool: toolGetBodyPartSplit, Handler: h.getBodyPartSplit},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resLatestRecap, Handler: h.latestRecap},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	src   Source
	units models.Units
	log   *slog.Logger
}

// --- Resource definitions ---

var resLatestRecap = mcp.NewResource(
	"liftrecap://latest_recap",
	"Latest Recap",
	mcp.WithResourceDescription("Full recap for the most recent year in the workout export"),
	mcp.WithMIMEType("application/json"),
)
