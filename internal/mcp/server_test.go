package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftrecap/internal/analytics"
	"github.com/claude/liftrecap/internal/ingest/strong"
	"github.com/claude/liftrecap/internal/models"
	"github.com/claude/liftrecap/internal/report"
	"github.com/claude/liftrecap/internal/server"
	"github.com/claude/liftrecap/internal/upload"
)

const exportCSV = `Date,Workout Name,Duration,Exercise Name,Set Order,Weight,Reps,Distance,Seconds,Notes,Workout Notes,RPE
2024-11-04 18:00:00,Push,45m,Bench Press (Barbell),1,60,8,0,0,,,
2025-03-03 18:00:00,Leg Day,1h 30m,Squat (Barbell),1,100,5,0,0,,,
2025-03-03 18:00:00,Leg Day,1h 30m,Leg Press,1,200,10,0,0,,,
2025-03-10 18:00:00,Push,50m,Bench Press (Barbell),1,80,5,0,0,,,
2025-03-10 18:00:00,Push,50m,Triceps Pushdown (Cable),1,30,12,0,0,,,
`

func newReports() *report.Service {
	return report.New(
		strong.NewProvider(strong.NewBuilder(nil, time.UTC), nil),
		analytics.New(analytics.WithClock(&analytics.MockClock{FixedNow: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)})),
	)
}

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strong.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newHandlers(t *testing.T, content string) *handlers {
	t.Helper()
	return &handlers{
		src:   NewFileSource(writeExport(t, content), newReports()),
		units: models.UnitsKg,
		log:   slog.New(slog.DiscardHandler),
	}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

// TestGetYearStatsLatest verifies the default year is the latest in the export.
func TestGetYearStatsLatest(t *testing.T) {
	h := newHandlers(t, exportCSV)
	res, err := h.getYearStats(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var stats models.YearStats
	if err := json.Unmarshal([]byte(resultText(t, res)), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Year != 2025 || stats.TotalWorkouts != 2 {
		t.Errorf("stats = year %d, workouts %d", stats.Year, stats.TotalWorkouts)
	}
	if stats.Units != models.UnitsKg {
		t.Errorf("units = %q, want kg", stats.Units)
	}
}

// TestGetYearStatsArguments verifies year and units arguments, and rejects bad units.
func TestGetYearStatsArguments(t *testing.T) {
	h := newHandlers(t, exportCSV)
	res, _ := h.getYearStats(context.Background(), callRequest(map[string]any{"year": 2024.0, "units": "lbs"}))
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	var stats models.YearStats
	if err := json.Unmarshal([]byte(resultText(t, res)), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Year != 2024 || stats.Units != models.UnitsLbs || stats.TotalWorkouts != 1 {
		t.Errorf("stats = %+v", stats)
	}

	res, _ = h.getYearStats(context.Background(), callRequest(map[string]any{"units": "stone"}))
	if !res.IsError {
		t.Error("expected tool error for bad units")
	}
}

// TestListYears verifies years come back latest first, and an undated export yields none.
func TestListYears(t *testing.T) {
	h := newHandlers(t, exportCSV)
	res, _ := h.listYears(context.Background(), callRequest(nil))
	var body struct {
		Years []int `json:"years"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Years) != 2 || body.Years[0] != 2025 || body.Years[1] != 2024 {
		t.Errorf("years = %v", body.Years)
	}

	empty := newHandlers(t, "")
	res, _ = empty.listYears(context.Background(), callRequest(nil))
	if res.IsError {
		t.Errorf("empty export should list no years, got error %s", resultText(t, res))
	}
}

// TestGetTopExercises verifies the limit argument and its bounds.
func TestGetTopExercises(t *testing.T) {
	h := newHandlers(t, exportCSV)
	res, _ := h.getTopExercises(context.Background(), callRequest(map[string]any{"limit": 2.0}))
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	var body struct {
		Year      int                    `json:"year"`
		Exercises []models.ExerciseCount `json:"exercises"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Year != 2025 || len(body.Exercises) != 2 {
		t.Errorf("body = %+v", body)
	}

	for _, limit := range []float64{0, 6} {
		res, _ := h.getTopExercises(context.Background(), callRequest(map[string]any{"limit": limit}))
		if !res.IsError {
			t.Errorf("limit %v: expected tool error", limit)
		}
	}
}

// TestGetBodyPartSplit verifies every category is listed in a fixed order.
func TestGetBodyPartSplit(t *testing.T) {
	h := newHandlers(t, exportCSV)
	res, _ := h.getBodyPartSplit(context.Background(), callRequest(nil))
	var body struct {
		TotalWorkouts int             `json:"total_workouts"`
		Split         []bodyPartCount `json:"split"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Split) != len(models.AllBodyParts()) {
		t.Fatalf("split = %d entries, want %d", len(body.Split), len(models.AllBodyParts()))
	}
	if body.Split[0].BodyPart != models.Legs || body.Split[0].Workouts != 1 {
		t.Errorf("split[0] = %+v, want Legs 1", body.Split[0])
	}
	for _, c := range body.Split {
		if c.Workouts > body.TotalWorkouts {
			t.Errorf("%s = %d exceeds %d workouts", c.BodyPart, c.Workouts, body.TotalWorkouts)
		}
	}
}

// TestNoDataToolError verifies an export without dated sessions yields a tool error, not a Go error.
func TestNoDataToolError(t *testing.T) {
	h := newHandlers(t, "Date,Workout Name\nsomeday,Push\n")
	res, err := h.getYearStats(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error")
	}
}

// TestMissingExportToolError verifies a missing file is reported through the tool result.
func TestMissingExportToolError(t *testing.T) {
	h := &handlers{
		src:   NewFileSource(filepath.Join(t.TempDir(), "missing.csv"), newReports()),
		units: models.UnitsKg,
		log:   slog.New(slog.DiscardHandler),
	}
	res, _ := h.getYearStats(context.Background(), callRequest(nil))
	if !res.IsError {
		t.Error("expected tool error")
	}
}

// TestLatestRecapResource verifies the resource returns the full JSON report.
func TestLatestRecapResource(t *testing.T) {
	h := newHandlers(t, exportCSV)
	var req mcp.ReadResourceRequest
	req.Params.URI = "liftrecap://latest_recap"

	contents, err := h.latestRecap(context.Background(), req)
	if err != nil {
		t.Fatalf("latestRecap: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents = %T", contents[0])
	}
	var rep report.Report
	if err := json.Unmarshal([]byte(text.Text), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Stats.Year != 2025 || text.URI != req.Params.URI {
		t.Errorf("report year %d, uri %q", rep.Stats.Year, text.URI)
	}
}

// TestRemoteSource verifies the remote source uploads the export to a liftrecap server.
func TestRemoteSource(t *testing.T) {
	srv := httptest.NewServer(server.New(newReports(), server.Options{APIKey: "k"}, slog.New(slog.DiscardHandler)))
	defer srv.Close()

	src := NewRemoteSource(writeExport(t, exportCSV), upload.NewClient(srv.URL, "k"))
	rep, err := src.Report(context.Background(), 2024, models.UnitsKg)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.Stats.Year != 2024 || rep.Stats.TotalWorkouts != 1 {
		t.Errorf("stats = %+v", rep.Stats)
	}

	years, err := src.Years(context.Background())
	if err != nil {
		t.Fatalf("Years: %v", err)
	}
	if len(years) != 2 || years[0] != 2025 {
		t.Errorf("years = %v", years)
	}
}

// TestNewRegistersTools verifies the server constructs with the default units fallback.
func TestNewRegistersTools(t *testing.T) {
	s := New(NewFileSource(writeExport(t, exportCSV), newReports()), "", "test", slog.New(slog.DiscardHandler))
	if s == nil {
		t.Fatal("New returned nil")
	}
}
