package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftrecap/internal/models"
	"github.com/claude/liftrecap/internal/report"
)

const maxTopExercises = 5

// --- Tool definitions ---

var toolGetYearStats = mcp.NewTool("get_year_stats",
	mcp.WithDescription("Full yearly recap: workout count, total duration and volume, top exercises, body part split, monthly activity, heaviest lift, longest workout, most-reps set, longest week streak and per-day workout counts."),
	mcp.WithNumber("year", mcp.Description("Calendar year (e.g. 2025). Defaults to the latest year in the export.")),
	mcp.WithString("units", mcp.Description("Weight unit label for the recap. Weights are not converted."), mcp.Enum("kg", "lbs")),
)

var toolListYears = mcp.NewTool("list_years",
	mcp.WithDescription("List the calendar years that have workouts in the export, latest first."),
)

var toolGetTopExercises = mcp.NewTool("get_top_exercises",
	mcp.WithDescription("Most frequent exercises of a year, counted once per workout they appear in."),
	mcp.WithNumber("year", mcp.Description("Calendar year. Defaults to the latest year in the export.")),
	mcp.WithNumber("limit", mcp.Description("Number of exercises to return (1-5). Defaults to 5.")),
)

var toolGetBodyPartSplit = mcp.NewTool("get_body_part_split",
	mcp.WithDescription("Number of workouts that trained each body part (Legs, Chest, Back, Shoulders, Arms, Core, Cardio, Other) in a year. A workout can count for several body parts."),
	mcp.WithNumber("year", mcp.Description("Calendar year. Defaults to the latest year in the export.")),
)

// --- Tool handlers ---

func (h *handlers) getYearStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	units := h.units
	if v := req.GetString("units", ""); v != "" {
		parsed, err := models.ParseUnits(v)
		if err != nil {
			return mcp.NewToolResultError("units must be kg or lbs"), nil
		}
		units = parsed
	}

	rep, errResult := h.report(ctx, "get_year_stats", req.GetInt("year", 0), units)
	if errResult != nil {
		return errResult, nil
	}

	result, err := mcp.NewToolResultJSON(rep.Stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listYears(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	years, err := h.src.Years(ctx)
	if errors.Is(err, report.ErrNoData) {
		years, err = []int{}, nil
	}
	if err != nil {
		h.log.Error("mcp list_years", "error", err)
		return mcp.NewToolResultError("loading export failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string][]int{"years": years})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTopExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", maxTopExercises)
	if limit < 1 || limit > maxTopExercises {
		return mcp.NewToolResultError("limit must be between 1 and 5"), nil
	}

	rep, errResult := h.report(ctx, "get_top_exercises", req.GetInt("year", 0), h.units)
	if errResult != nil {
		return errResult, nil
	}

	top := rep.Stats.TopExercises
	if len(top) > limit {
		top = top[:limit]
	}
	result, err := mcp.NewToolResultJSON(map[string]any{
		"year":      rep.Stats.Year,
		"exercises": top,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

type bodyPartCount struct {
	BodyPart models.BodyPart `json:"body_part"`
	Workouts int             `json:"workouts"`
}

func (h *handlers) getBodyPartSplit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep, errResult := h.report(ctx, "get_body_part_split", req.GetInt("year", 0), h.units)
	if errResult != nil {
		return errResult, nil
	}

	split := make([]bodyPartCount, 0, len(rep.Stats.BodyPartSplit))
	for _, part := range models.AllBodyParts() {
		split = append(split, bodyPartCount{BodyPart: part, Workouts: rep.Stats.BodyPartSplit[part]})
	}
	result, err := mcp.NewToolResultJSON(map[string]any{
		"year":           rep.Stats.Year,
		"total_workouts": rep.Stats.TotalWorkouts,
		"split":          split,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// report loads a recap, turning failures into tool error results.
func (h *handlers) report(ctx context.Context, tool string, year int, units models.Units) (*report.Report, *mcp.CallToolResult) {
	if year < 0 {
		return nil, mcp.NewToolResultError("year must be positive")
	}
	rep, err := h.src.Report(ctx, year, units)
	if errors.Is(err, report.ErrNoData) {
		return nil, mcp.NewToolResultError("the export has no workouts with valid dates")
	}
	if err != nil {
		h.log.Error("mcp "+tool, "error", err)
		return nil, mcp.NewToolResultError("loading export failed: " + err.Error())
	}
	return rep, nil
}
