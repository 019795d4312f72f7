package report

import (
	"fmt"
	"io"

	"github.com/claude/liftrecap/internal/models"
)

// WriteText prints a human-readable recap.
func WriteText(w io.Writer, rep *Report) {
	s := rep.Stats
	fmt.Fprintln(w)
	fmt.Fprintf(w, "=== %d Recap ===\n", s.Year)
	if !s.HasData() {
		fmt.Fprintf(w, "  No workouts logged in %d.\n\n", s.Year)
		return
	}

	fmt.Fprintf(w, "  Workouts:         %d\n", s.TotalWorkouts)
	fmt.Fprintf(w, "  Time trained:     %dh %dm\n", s.TotalDurationMinutes/60, s.TotalDurationMinutes%60)
	fmt.Fprintf(w, "  Total volume:     %.0f %s\n", s.TotalVolume, s.Units)
	if s.MostActiveMonth != "" {
		fmt.Fprintf(w, "  Busiest month:    %s (%d workouts)\n", s.MostActiveMonth, s.MonthCount(s.MostActiveMonth))
	}
	if !s.HeaviestLift.Empty() {
		fmt.Fprintf(w, "  Heaviest lift:    %s, %g %s\n", s.HeaviestLift.Name, s.HeaviestLift.Weight, s.Units)
	}
	if s.LongestWorkout.DurationMinutes > 0 {
		fmt.Fprintf(w, "  Longest workout:  %s, %d min on %s\n",
			s.LongestWorkout.Name, s.LongestWorkout.DurationMinutes, s.LongestWorkout.Date.Format("2006-01-02"))
	}
	if s.MostRepsSet.Reps > 0 {
		fmt.Fprintf(w, "  Most reps:        %d x %g %s %s\n",
			s.MostRepsSet.Reps, s.MostRepsSet.Weight, s.Units, s.MostRepsSet.ExerciseName)
	}
	fmt.Fprintf(w, "  Week streak:      %d weeks", s.LongestWeekStreak.Weeks)
	if s.LongestWeekStreak.Weeks > 0 {
		fmt.Fprintf(w, " (from %s)", s.LongestWeekStreak.Start.Format("2006-01-02"))
	}
	fmt.Fprintln(w)

	if len(s.TopExercises) > 0 {
		fmt.Fprintf(w, "\n  Top exercises:\n")
		for i, e := range s.TopExercises {
			fmt.Fprintf(w, "    %d. %s (%d workouts)\n", i+1, e.Name, e.Count)
		}
	}

	fmt.Fprintf(w, "\n  Body parts:\n")
	for _, part := range models.AllBodyParts() {
		fmt.Fprintf(w, "    %-10s %d\n", part, s.BodyPartSplit[part])
	}
	fmt.Fprintln(w)
}
