package strong

import (
	"slices"
	"time"

	"github.com/claude/liftrecap/internal/classify"
	"github.com/claude/liftrecap/internal/models"
)

// Builder folds parsed rows into workout sessions.
type Builder struct {
	classifier *classify.Classifier
	loc        *time.Location
}

// NewBuilder creates a Builder. A nil classifier uses classify.Default and a
// nil location uses time.Local.
func NewBuilder(c *classify.Classifier, loc *time.Location) *Builder {
	if c == nil {
		c = classify.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Builder{classifier: c, loc: loc}
}

// sessionKey groups rows by the exact date string, not the parsed instant:
// "2024-05-08 21:38:05" and "2024-05-08 21:38:05 " are different sessions.
type sessionKey struct {
	date string
	name string
}

// Build groups rows into sessions and returns them sorted by date. The first
// row of a session fixes its duration and notes; every row appends one set in
// row order. Sessions with equal dates keep their first-seen order.
func (b *Builder) Build(rows []models.RawRow) []models.WorkoutSession {
	index := make(map[sessionKey]int)
	var sessions []models.WorkoutSession

	for _, row := range rows {
		if blank(row.Date) || blank(row.WorkoutName) {
			continue
		}
		key := sessionKey{date: row.Date, name: row.WorkoutName}
		i, ok := index[key]
		if !ok {
			// Unparseable dates keep the zero time and fall outside every year.
			date, _ := ParseDate(row.Date, b.loc)
			sessions = append(sessions, models.WorkoutSession{
				ID:              row.Date + "-" + row.WorkoutName,
				RawDate:         row.Date,
				Date:            date,
				Name:            row.WorkoutName,
				DurationMinutes: ParseDuration(row.Duration),
				Notes:           row.WorkoutNotes,
			})
			i = len(sessions) - 1
			index[key] = i
		}
		sessions[i].Sets = append(sessions[i].Sets, models.WorkoutSet{
			ExerciseName: row.ExerciseName,
			Order:        row.SetOrder,
			Weight:       row.Weight,
			Reps:         row.Reps,
			Distance:     row.Distance,
			Seconds:      row.Seconds,
			Notes:        row.Notes,
			RPE:          row.RPE,
			BodyPart:     b.classifier.Classify(row.ExerciseName),
		})
	}

	slices.SortStableFunc(sessions, func(a, b models.WorkoutSession) int {
		return a.Date.Compare(b.Date)
	})
	return sessions
}
