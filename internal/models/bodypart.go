package models

import (
	"errors"
	"fmt"
	"strings"
)

// BodyPart is a training category assigned to an exercise.
type BodyPart string

const (
	Legs      BodyPart = "Legs"
	Chest     BodyPart = "Chest"
	Back      BodyPart = "Back"
	Shoulders BodyPart = "Shoulders"
	Arms      BodyPart = "Arms"
	Core      BodyPart = "Core"
	Cardio    BodyPart = "Cardio"
	Other     BodyPart = "Other"
)

// AllBodyParts returns every category in display order.
func AllBodyParts() []BodyPart {
	return []BodyPart{Legs, Chest, Back, Shoulders, Arms, Core, Cardio, Other}
}

// Units is the weight label carried through to the presentation layer.
// It has no numeric effect.
type Units string

const (
	UnitsKg  Units = "kg"
	UnitsLbs Units = "lbs"

	DefaultUnits = UnitsLbs
)

// ErrInvalidUnits is returned by ParseUnits for anything other than kg or lbs.
var ErrInvalidUnits = errors.New("units must be kg or lbs")

// ParseUnits accepts "kg" or "lbs" in any case.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg":
		return UnitsKg, nil
	case "lbs":
		return UnitsLbs, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUnits, s)
}
