package strong

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftrecap/internal/models"
)

// Column names of a Strong CSV export. Columns are matched by name.
const (
	colDate         = "Date"
	colWorkoutName  = "Workout Name"
	colDuration     = "Duration"
	colExerciseName = "Exercise Name"
	colSetOrder     = "Set Order"
	colWeight       = "Weight"
	colReps         = "Reps"
	colDistance     = "Distance"
	colSeconds      = "Seconds"
	colNotes        = "Notes"
	colWorkoutNotes = "Workout Notes"
	colRPE          = "RPE"
)

var (
	// hoursRe and minutesRe match the parts of "1h 30m" independently.
	hoursRe   = regexp.MustCompile(`(\d+)h`)
	minutesRe = regexp.MustCompile(`(\d+)m`)

	dateLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006-01-02",
	}
)

// ParseError is returned when the CSV stream cannot be read at all.
// Malformed individual records never produce a ParseError.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("unreadable CSV at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("unreadable CSV: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRows reads a Strong CSV export. Rows without a date or workout name
// are dropped. Empty input yields no rows and no error.
func ParseRows(r io.Reader, log *slog.Logger) ([]models.RawRow, error) {
	rows, _, err := parseRows(r, log)
	return rows, err
}

func parseRows(r io.Reader, log *slog.Logger) ([]models.RawRow, int, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, &ParseError{Line: 1, Err: err}
	}
	columns := headerIndex(header)

	var rows []models.RawRow
	dropped := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				log.Debug("skipping malformed CSV record", "line", pe.Line, "error", pe.Err)
				dropped++
				continue
			}
			return nil, 0, &ParseError{Err: err}
		}

		line, _ := cr.FieldPos(0)
		row := newRawRow(rec, columns, line)
		if blank(row.Date) || blank(row.WorkoutName) {
			dropped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, dropped, nil
}

// headerIndex maps trimmed header names to column positions. The first
// occurrence of a duplicated name wins.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

func newRawRow(rec []string, columns map[string]int, line int) models.RawRow {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	return models.RawRow{
		Line:         line,
		Date:         get(colDate),
		WorkoutName:  get(colWorkoutName),
		Duration:     get(colDuration),
		ExerciseName: get(colExerciseName),
		SetOrder:     parseCount(get(colSetOrder)),
		Weight:       parseNumber(get(colWeight)),
		Reps:         parseCount(get(colReps)),
		Distance:     parseNumber(get(colDistance)),
		Seconds:      parseNumber(get(colSeconds)),
		Notes:        get(colNotes),
		WorkoutNotes: get(colWorkoutNotes),
		RPE:          parseNumber(get(colRPE)),
	}
}

// parseNumber coerces a cell to a non-negative finite number, or 0.
// "W" (warmup), "" and "abc" all yield 0.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// parseCount coerces a cell to a non-negative int. Values that do not fit an
// int yield 0, like any other unusable token.
func parseCount(s string) int {
	f := parseNumber(s)
	if f >= math.MaxInt {
		return 0
	}
	return int(f)
}

// ParseDuration converts "1h 30m", "45m" or "2h" to minutes. Anything
// unrecognised is 0.
func ParseDuration(s string) int {
	minutes := 0
	if m := hoursRe.FindStringSubmatch(s); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			minutes += h * 60
		}
	}
	if m := minutesRe.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			minutes += n
		}
	}
	return minutes
}

// ParseDate parses an export timestamp such as "2024-05-08 21:38:05" in loc
// (time.Local when nil). The second result is false when no layout matches.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
