package classify

import "github.com/claude/liftrecap/internal/models"

// DefaultTable returns a fresh copy of the curated Strong exercise tables.
func DefaultTable() Table {
	return Table{
		Exact: map[string]models.BodyPart{
			"Squat (Barbell)":                         models.Legs,
			"Deadlift (Barbell)":                      models.Legs,
			"Leg Press":                               models.Legs,
			"Hip Thrust (Barbell)":                    models.Legs,
			"Lying Leg Curl (Machine)":                models.Legs,
			"Leg Extension (Machine)":                 models.Legs,
			"Bench Press (Barbell)":                   models.Chest,
			"Bench Press (Dumbbell)":                  models.Chest,
			"Incline Bench Press (Dumbbell)":          models.Chest,
			"Chest Press (Machine)":                   models.Chest,
			"Lat Pulldown (Cable)":                    models.Back,
			"Lat Pulldown (Machine)":                  models.Back,
			"Seated Row (Cable)":                      models.Back,
			"Bent Over Row (Dumbbell)":                models.Back,
			"Bent Over One Arm Row (Dumbbell)":        models.Back,
			"Pull Up (Assisted)":                      models.Back,
			"Overhead Press (Barbell)":                models.Shoulders,
			"Seated Overhead Press (Dumbbell)":        models.Shoulders,
			"Lateral Raise (Dumbbell)":                models.Shoulders,
			"Shrug (Dumbbell)":                        models.Shoulders,
			"Bicep Curl (Cable)":                      models.Arms,
			"Triceps Pushdown (Cable - Straight Bar)": models.Arms,
			"Stretching":                              models.Other,
		},
		// Order matters: first match wins.
		Keywords: []Keyword{
			{"Squat", models.Legs},
			{"Leg", models.Legs},
			{"Calf", models.Legs},
			{"Glute", models.Legs},
			{"Bench", models.Chest},
			{"Chest", models.Chest},
			{"Fly", models.Chest},
			{"Press", models.Shoulders},
			{"Row", models.Back},
			{"Pull", models.Back},
			{"Chin", models.Back},
			{"Lat", models.Back},
			{"Shoulder", models.Shoulders},
			{"Raise", models.Shoulders},
			{"Curl", models.Arms},
			{"Tricep", models.Arms},
			{"Bicep", models.Arms},
			{"Extension", models.Arms},
			{"Dip", models.Arms},
			{"Pushdown", models.Arms},
			{"Abs", models.Core},
			{"Crunch", models.Core},
			{"Plank", models.Core},
			{"Run", models.Cardio},
			{"Cycle", models.Cardio},
			{"Treadmill", models.Cardio},
		},
	}
}
