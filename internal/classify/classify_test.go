package classify

import (
	"testing"

	"github.com/claude/liftrecap/internal/models"
)

// TestDefaultClassify covers exact matches, keyword fallbacks and the Other default.
func TestDefaultClassify(t *testing.T) {
	tests := []struct {
		name string
		want models.BodyPart
	}{
		{"Bench Press (Barbell)", models.Chest},
		{"Deadlift (Barbell)", models.Legs},
		{"Stretching", models.Other},
		{"Leg Press", models.Legs},
		{"Front Squat (Barbell)", models.Legs},
		{"Incline Bench Press (Barbell)", models.Chest},
		{"Arnold Press (Dumbbell)", models.Shoulders},
		{"Chin Up", models.Back},
		{"Hammer Curl (Dumbbell)", models.Arms},
		{"Cable Crunch", models.Core},
		{"Running", models.Cardio},
		{"Farmer Walk", models.Other},
		{"", models.Other},
	}
	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.name); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

// TestKeywordOrderWins verifies that the first declared keyword wins, not the most specific one.
// "Leg Curl" contains both "Leg" and "Curl"; "Leg" is declared first.
func TestKeywordOrderWins(t *testing.T) {
	if got := Default().Classify("Seated Leg Curl (Machine)"); got != models.Legs {
		t.Errorf("Classify = %q, want Legs", got)
	}
	c := New(Table{Keywords: []Keyword{{"Press", models.Shoulders}, {"Leg", models.Legs}}})
	if got := c.Classify("Single Leg Press"); got != models.Shoulders {
		t.Errorf("Classify with Press first = %q, want Shoulders", got)
	}
}

// TestExactBeforeKeyword verifies the exact table is consulted before any keyword.
func TestExactBeforeKeyword(t *testing.T) {
	c := New(Table{
		Exact:    map[string]models.BodyPart{"Chest Press (Machine)": models.Chest},
		Keywords: []Keyword{{"Press", models.Shoulders}},
	})
	if got := c.Classify("Chest Press (Machine)"); got != models.Chest {
		t.Errorf("exact = %q, want Chest", got)
	}
	if got := c.Classify("Chest Press (Cable)"); got != models.Shoulders {
		t.Errorf("keyword = %q, want Shoulders", got)
	}
}

// TestNewCopiesTable verifies that mutating the input table after New does not
// change classification.
func TestNewCopiesTable(t *testing.T) {
	tbl := Table{
		Exact:    map[string]models.BodyPart{"Plank": models.Core},
		Keywords: []Keyword{{"Run", models.Cardio}},
	}
	c := New(tbl)
	tbl.Exact["Plank"] = models.Arms
	tbl.Keywords[0].Part = models.Legs

	if got := c.Classify("Plank"); got != models.Core {
		t.Errorf("Plank = %q, want Core", got)
	}
	if got := c.Classify("Trail Run"); got != models.Cardio {
		t.Errorf("Trail Run = %q, want Cardio", got)
	}
}

// TestNilClassifierUsesDefault verifies the nil receiver falls back to the default tables.
func TestNilClassifierUsesDefault(t *testing.T) {
	var c *Classifier
	if got := c.Classify("Squat (Barbell)"); got != models.Legs {
		t.Errorf("nil Classify = %q, want Legs", got)
	}
}

// TestDefaultTableIsFresh verifies DefaultTable hands out independent copies.
func TestDefaultTableIsFresh(t *testing.T) {
	a := DefaultTable()
	a.Exact["Squat (Barbell)"] = models.Other
	if got := Default().Classify("Squat (Barbell)"); got != models.Legs {
		t.Errorf("default changed by caller mutation: %q", got)
	}
}
