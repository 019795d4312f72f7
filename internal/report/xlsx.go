package report

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/claude/liftrecap/internal/models"
)

// Sheet names of the XLSX export.
const (
	SheetSummary   = "Summary"
	SheetExercises = "Top Exercises"
	SheetBodyParts = "Body Parts"
	SheetMonths    = "Months"
	SheetDays      = "Workouts By Date"
)

const dateLayout = "2006-01-02"

// WriteXLSX writes the recap as a workbook with one sheet per section.
func WriteXLSX(w io.Writer, rep *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	s := rep.Stats
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	summary := [][]any{
		{"Report ID", rep.ID.String()},
		{"Year", s.Year},
		{"Units", string(s.Units)},
		{"Workouts", s.TotalWorkouts},
		{"Duration (min)", s.TotalDurationMinutes},
		{"Total volume", s.TotalVolume},
		{"Most active month", s.MostActiveMonth},
		{"Heaviest lift", s.HeaviestLift.Name},
		{"Heaviest weight", s.HeaviestLift.Weight},
		{"Longest workout", s.LongestWorkout.Name},
		{"Longest duration (min)", s.LongestWorkout.DurationMinutes},
		{"Most reps exercise", s.MostRepsSet.ExerciseName},
		{"Most reps", s.MostRepsSet.Reps},
		{"Most reps weight", s.MostRepsSet.Weight},
		{"Week streak", s.LongestWeekStreak.Weeks},
		{"Streak start", s.LongestWeekStreak.Start.Format(dateLayout)},
		{"Streak end", s.LongestWeekStreak.End.Format(dateLayout)},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	exercises := [][]any{{"Exercise", "Workouts"}}
	for _, e := range s.TopExercises {
		exercises = append(exercises, []any{e.Name, e.Count})
	}

	parts := [][]any{{"Body part", "Workouts"}}
	for _, p := range models.AllBodyParts() {
		parts = append(parts, []any{string(p), s.BodyPartSplit[p]})
	}

	months := [][]any{{"Month", "Workouts"}}
	for _, m := range s.ActiveMonths {
		months = append(months, []any{m.Month, m.Count})
	}

	days := [][]any{{"Date", "Workouts"}}
	dates := make([]string, 0, len(s.WorkoutsByDate))
	for d := range s.WorkoutsByDate {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	for _, d := range dates {
		days = append(days, []any{d, s.WorkoutsByDate[d]})
	}

	for _, sheet := range []struct {
		name string
		rows [][]any
	}{
		{SheetExercises, exercises},
		{SheetBodyParts, parts},
		{SheetMonths, months},
		{SheetDays, days},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet.name, err)
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
