package models

import "time"

// YearStats is the single-year summary handed to the presentation layer.
type YearStats struct {
	Year                 int              `json:"year"`
	Units                Units            `json:"units"`
	TotalWorkouts        int              `json:"total_workouts"`
	TotalDurationMinutes int              `json:"total_duration_minutes"`
	TotalVolume          float64          `json:"total_volume"`
	TopExercises         []ExerciseCount  `json:"top_exercises"`
	BodyPartSplit        map[BodyPart]int `json:"body_part_split"`
	ActiveMonths         []MonthCount     `json:"active_months"`
	MostActiveMonth      string           `json:"most_active_month"`
	HeaviestLift         Lift             `json:"heaviest_lift"`
	LongestWorkout       LongestWorkout   `json:"longest_workout"`
	MostRepsSet          RepSet           `json:"most_reps_set"`
	LongestWeekStreak    WeekStreak       `json:"longest_week_streak"`
	WorkoutsByDate       map[string]int   `json:"workouts_by_date"`
}

// ExerciseCount is the number of sessions an exercise appeared in.
type ExerciseCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MonthCount is the number of sessions in a calendar month ("March").
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Lift is the heaviest single set of the year. An empty Name means no data.
type Lift struct {
	Name   string    `json:"name"`
	Weight float64   `json:"weight"`
	Date   time.Time `json:"date"`
}

// LongestWorkout is the session with the greatest duration.
type LongestWorkout struct {
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Date            time.Time `json:"date"`
}

// RepSet is the set with the most reps.
type RepSet struct {
	ExerciseName string    `json:"exercise_name"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	Date         time.Time `json:"date"`
}

// WeekStreak is the longest run of consecutive active weeks.
// End is approximate: Start plus Weeks×7 days.
type WeekStreak struct {
	Weeks int       `json:"weeks"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// HasData reports whether any session fell in the year.
func (s YearStats) HasData() bool {
	return s.TotalWorkouts > 0
}

// MonthCount returns the session count for a month name, 0 if absent.
func (s YearStats) MonthCount(month string) int {
	for _, m := range s.ActiveMonths {
		if m.Month == month {
			return m.Count
		}
	}
	return 0
}

// Empty reports whether no lift was recorded.
func (l Lift) Empty() bool {
	return l.Name == ""
}
