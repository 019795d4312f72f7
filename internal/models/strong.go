package models

import "time"

// RawRow is one record of a Strong-style CSV export, as read from the file.
// Numeric fields are already coerced; unparseable tokens are 0.
type RawRow struct {
	Line         int
	Date         string
	WorkoutName  string
	Duration     string
	ExerciseName string
	SetOrder     int
	Weight       float64
	Reps         int
	Distance     float64
	Seconds      float64
	Notes        string
	WorkoutNotes string
	RPE          float64
}

// WorkoutSession is one real-world workout, keyed by its raw date string and name.
type WorkoutSession struct {
	ID              string
	RawDate         string
	Date            time.Time
	Name            string
	DurationMinutes int
	Notes           string
	Sets            []WorkoutSet
}

// WorkoutSet is a single recorded effort within a session.
type WorkoutSet struct {
	ExerciseName string
	Order        int
	Weight       float64
	Reps         int
	Distance     float64
	Seconds      float64
	Notes        string
	RPE          float64
	BodyPart     BodyPart
}

// Volume returns weight × reps, or 0 when either is not positive.
func (s WorkoutSet) Volume() float64 {
	if s.Weight > 0 && s.Reps > 0 {
		return s.Weight * float64(s.Reps)
	}
	return 0
}
