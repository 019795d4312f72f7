// Package analytics reduces workout sessions to a single-year summary.
package analytics

import (
	"slices"
	"time"

	"github.com/claude/liftrecap/internal/classify"
	"github.com/claude/liftrecap/internal/models"
)

const (
	topExerciseLimit = 5

	week = 7 * 24 * time.Hour
	// streakTolerance absorbs the hour lost or gained across a DST change.
	streakTolerance = 2 * time.Hour

	dateKeyLayout = "2006-01-02"
)

// Aggregator computes YearStats. It holds no per-run state and may be shared.
type Aggregator struct {
	clock      Clock
	classifier *classify.Classifier
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock sets the clock used for the bounds of an empty streak.
func WithClock(c Clock) Option {
	return func(a *Aggregator) { a.clock = c }
}

// WithClassifier sets the classifier used for sets without a body part tag.
func WithClassifier(c *classify.Classifier) Option {
	return func(a *Aggregator) { a.classifier = c }
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{clock: SystemClock{}, classifier: classify.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AggregateYear summarises sessions for year using the default Aggregator.
func AggregateYear(sessions []models.WorkoutSession, year int, units models.Units) models.YearStats {
	return New().Year(sessions, year, units)
}

// Year summarises the sessions dated within year. Sessions should be sorted
// by date: every first-seen tie-break follows input order. Units are carried
// through as a label and never convert weights.
func (a *Aggregator) Year(sessions []models.WorkoutSession, year int, units models.Units) models.YearStats {
	stats := models.YearStats{
		Year:           year,
		Units:          units,
		TopExercises:   []models.ExerciseCount{},
		BodyPartSplit:  make(map[models.BodyPart]int, len(models.AllBodyParts())),
		ActiveMonths:   []models.MonthCount{},
		WorkoutsByDate: make(map[string]int),
	}
	for _, part := range models.AllBodyParts() {
		stats.BodyPartSplit[part] = 0
	}

	var (
		exercises tally
		months    tally
		weeks     []time.Time
	)

	for _, s := range sessions {
		if s.Date.IsZero() || s.Date.Year() != year {
			continue
		}

		stats.TotalWorkouts++
		stats.TotalDurationMinutes += s.DurationMinutes
		stats.WorkoutsByDate[s.Date.Format(dateKeyLayout)]++
		stats.LongestWorkout = longerWorkout(stats.LongestWorkout, s)
		months.add(s.Date.Month().String())
		weeks = append(weeks, weekStart(s.Date))

		seenExercise := make(map[string]bool)
		seenPart := make(map[models.BodyPart]bool)
		for _, set := range s.Sets {
			stats.TotalVolume += set.Volume()
			stats.HeaviestLift = heavierLift(stats.HeaviestLift, set, s.Date)
			stats.MostRepsSet = moreReps(stats.MostRepsSet, set, s.Date)

			if set.ExerciseName != "" && !seenExercise[set.ExerciseName] {
				seenExercise[set.ExerciseName] = true
				exercises.add(set.ExerciseName)
			}

			part := set.BodyPart
			if part == "" {
				part = a.classifier.Classify(set.ExerciseName)
			}
			if !seenPart[part] {
				seenPart[part] = true
				stats.BodyPartSplit[part]++
			}
		}
	}

	stats.TopExercises = topExercises(exercises)
	stats.ActiveMonths, stats.MostActiveMonth = activeMonths(months)
	stats.LongestWeekStreak = longestStreak(weeks, a.clock.Now())
	return stats
}

// AvailableYears lists the distinct years with dated sessions, latest first.
func AvailableYears(sessions []models.WorkoutSession) []int {
	seen := make(map[int]bool)
	var years []int
	for _, s := range sessions {
		if s.Date.IsZero() {
			continue
		}
		if y := s.Date.Year(); !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years
}

// tally counts keys while remembering the order they were first seen in.
type tally struct {
	order  []string
	counts map[string]int
}

func (t *tally) add(key string) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// topExercises sorts by descending session count; equal counts keep
// first-seen order.
func topExercises(t tally) []models.ExerciseCount {
	out := make([]models.ExerciseCount, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, models.ExerciseCount{Name: name, Count: t.counts[name]})
	}
	slices.SortStableFunc(out, func(a, b models.ExerciseCount) int {
		return b.Count - a.Count
	})
	if len(out) > topExerciseLimit {
		out = out[:topExerciseLimit]
	}
	return out
}

// activeMonths returns month counts in first-seen order and the first month
// holding the maximum count.
func activeMonths(t tally) ([]models.MonthCount, string) {
	out := make([]models.MonthCount, 0, len(t.order))
	best, bestCount := "", 0
	for _, month := range t.order {
		n := t.counts[month]
		out = append(out, models.MonthCount{Month: month, Count: n})
		if n > bestCount {
			best, bestCount = month, n
		}
	}
	return out, best
}

func heavierLift(cur models.Lift, set models.WorkoutSet, date time.Time) models.Lift {
	if set.Weight > cur.Weight {
		return models.Lift{Name: set.ExerciseName, Weight: set.Weight, Date: date}
	}
	return cur
}

// moreReps prefers more reps, then a heavier weight at equal reps. Sets with
// no reps never qualify, so a weighted 0-rep set cannot take the empty slot.
func moreReps(cur models.RepSet, set models.WorkoutSet, date time.Time) models.RepSet {
	if set.Reps <= 0 {
		return cur
	}
	if set.Reps > cur.Reps || (set.Reps == cur.Reps && set.Weight > cur.Weight) {
		return models.RepSet{ExerciseName: set.ExerciseName, Weight: set.Weight, Reps: set.Reps, Date: date}
	}
	return cur
}

func longerWorkout(cur models.LongestWorkout, s models.WorkoutSession) models.LongestWorkout {
	if s.DurationMinutes > cur.DurationMinutes {
		return models.LongestWorkout{Name: s.Name, DurationMinutes: s.DurationMinutes, Date: s.Date}
	}
	return cur
}

// weekStart returns Monday 00:00 of t's week in t's location.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// longestStreak finds the longest run of consecutive week starts. With no
// weeks the streak is empty and both bounds are now.
func longestStreak(weeks []time.Time, now time.Time) models.WeekStreak {
	if len(weeks) == 0 {
		return models.WeekStreak{Start: now, End: now}
	}

	weeks = slices.Clone(weeks)
	slices.SortFunc(weeks, func(a, b time.Time) int { return a.Compare(b) })
	weeks = slices.CompactFunc(weeks, func(a, b time.Time) bool { return a.Equal(b) })

	best := models.WeekStreak{Weeks: 1, Start: weeks[0]}
	run, runStart := 1, weeks[0]
	for i := 1; i < len(weeks); i++ {
		gap := weeks[i].Sub(weeks[i-1]) - week
		if gap < 0 {
			gap = -gap
		}
		if gap <= streakTolerance {
			run++
		} else {
			run, runStart = 1, weeks[i]
		}
		if run > best.Weeks {
			best = models.WeekStreak{Weeks: run, Start: runStart}
		}
	}
	best.End = best.Start.AddDate(0, 0, 7*best.Weeks)
	return best
}
