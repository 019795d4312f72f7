package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftrecap/internal/analytics"
	"github.com/claude/liftrecap/internal/ingest/strong"
	"github.com/claude/liftrecap/internal/models"
	"github.com/claude/liftrecap/internal/report"
)

const exportCSV = `Date,Workout Name,Duration,Exercise Name,Set Order,Weight,Reps,Distance,Seconds,Notes,Workout Notes,RPE
2024-11-04 18:00:00,Push,45m,Bench Press (Barbell),1,60,8,0,0,,,
2025-03-03 18:00:00,Leg Day,1h 30m,Squat (Barbell),1,100,5,0,0,,,
2025-03-03 18:00:00,Leg Day,1h 30m,Leg Press,1,200,10,0,0,,,
`

func newTestServer(opts Options) *Server {
	svc := report.New(
		strong.NewProvider(strong.NewBuilder(nil, time.UTC), nil),
		analytics.New(analytics.WithClock(&analytics.MockClock{FixedNow: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)})),
	)
	return New(svc, opts, slog.New(slog.DiscardHandler))
}

func post(t *testing.T, s *Server, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

// TestHealthz verifies the liveness endpoint.
func TestHealthz(t *testing.T) {
	s := newTestServer(Options{APIKey: "k"})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

// TestRecapRawBody verifies a raw CSV upload returns the latest-year recap.
func TestRecapRawBody(t *testing.T) {
	s := newTestServer(Options{})
	rec := post(t, s, "/api/v1/recap", exportCSV, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var rep report.Report
	if err := json.NewDecoder(rec.Body).Decode(&rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Stats.Year != 2025 || rep.Stats.TotalVolume != 2500 {
		t.Errorf("stats = year %d, volume %v", rep.Stats.Year, rep.Stats.TotalVolume)
	}
	if rep.Stats.Units != models.UnitsLbs {
		t.Errorf("units = %q, want lbs", rep.Stats.Units)
	}
	if rep.Stats.BodyPartSplit[models.Legs] != 1 {
		t.Errorf("legs = %d, want 1", rep.Stats.BodyPartSplit[models.Legs])
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

// TestRecapQueryParams verifies year and units parameters select the summary.
func TestRecapQueryParams(t *testing.T) {
	s := newTestServer(Options{DefaultUnits: models.UnitsLbs})
	rec := post(t, s, "/api/v1/recap?year=2024&units=KG", exportCSV, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var rep report.Report
	if err := json.NewDecoder(rec.Body).Decode(&rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Stats.Year != 2024 || rep.Stats.Units != models.UnitsKg || rep.Stats.TotalWorkouts != 1 {
		t.Errorf("stats = %+v", rep.Stats)
	}
}

// TestRecapMultipart verifies the CSV can be sent as a multipart "file" field.
func TestRecapMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "strong.csv")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(exportCSV))
	mw.Close()

	s := newTestServer(Options{})
	rec := post(t, s, "/api/v1/recap", buf.String(), http.Header{"Content-Type": {mw.FormDataContentType()}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

// TestRecapMultipartMissingFile verifies a form without the file part is a client error.
func TestRecapMultipartMissingFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("year", "2025")
	mw.Close()

	s := newTestServer(Options{})
	rec := post(t, s, "/api/v1/recap", buf.String(), http.Header{"Content-Type": {mw.FormDataContentType()}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestRecapErrors verifies the error to status mapping.
func TestRecapErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		opts   Options
		want   int
	}{
		{"bad units", "/api/v1/recap?units=stone", exportCSV, Options{}, http.StatusBadRequest},
		{"bad year", "/api/v1/recap?year=soon", exportCSV, Options{}, http.StatusBadRequest},
		{"no dated sessions", "/api/v1/recap", "Date,Workout Name\nsomeday,Push\n", Options{}, http.StatusUnprocessableEntity},
		{"empty body", "/api/v1/recap", "", Options{}, http.StatusUnprocessableEntity},
		{"too large", "/api/v1/recap", exportCSV, Options{MaxUploadBytes: 16}, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, newTestServer(tt.opts), tt.target, tt.body, nil)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			if msg := errorBody(t, rec); msg == "" {
				t.Error("empty error message")
			}
		})
	}
}

// TestRecapRequiresAPIKey verifies upload routes are guarded when a key is configured.
func TestRecapRequiresAPIKey(t *testing.T) {
	s := newTestServer(Options{APIKey: "secret"})
	if rec := post(t, s, "/api/v1/recap", exportCSV, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("without key status = %d, want 401", rec.Code)
	}
	rec := post(t, s, "/api/v1/recap", exportCSV, http.Header{"X-Api-Key": {"secret"}})
	if rec.Code != http.StatusOK {
		t.Errorf("with key status = %d, want 200", rec.Code)
	}
}

// TestYearsEndpoint verifies year discovery returns years latest first.
func TestYearsEndpoint(t *testing.T) {
	s := newTestServer(Options{})
	rec := post(t, s, "/api/v1/years", exportCSV, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Years []int `json:"years"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Years) != 2 || body.Years[0] != 2025 || body.Years[1] != 2024 {
		t.Errorf("years = %v, want [2025 2024]", body.Years)
	}
}

// TestParseYear covers the optional year parameter.
func TestParseYear(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"2025", 2025, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"twenty", 0, true},
	}
	for _, tt := range tests {
		got, err := parseYear(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseYear(%q) = %d, %v", tt.in, got, err)
		}
	}
}

// TestRecapXLSX verifies format=xlsx returns a workbook download.
func TestRecapXLSX(t *testing.T) {
	s := newTestServer(Options{})
	rec := post(t, s, "/api/v1/recap?format=xlsx", exportCSV, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != xlsxContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "recap-2025.xlsx") {
		t.Errorf("Content-Disposition = %q", got)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body is not a zip archive")
	}
}

// TestRecapUnknownFormat verifies unsupported formats are rejected.
func TestRecapUnknownFormat(t *testing.T) {
	rec := post(t, newTestServer(Options{}), "/api/v1/recap?format=pdf", exportCSV, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestUploadRateLimited verifies the limiter guards the API routes but not /healthz.
func TestUploadRateLimited(t *testing.T) {
	s := newTestServer(Options{RateLimit: 0.001, RateBurst: 1})

	if rec := post(t, s, "/api/v1/years", exportCSV, nil); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}
	rec := post(t, s, "/api/v1/years", exportCSV, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if got := errorBody(t, rec); got != "rate limit exceeded" {
		t.Errorf("error = %q, want %q", got, "rate limit exceeded")
	}

	health := httptest.NewRecorder()
	s.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if health.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", health.Code)
	}
}
