// Package classify maps exercise names to body-part categories.
//
// Resolution is an exact-name lookup, then a keyword substring scan in the
// table's declared order, then Other. The keyword order is significant:
// "Leg Press" resolves to whichever of "Leg" and "Press" is listed first.
package classify

import (
	"strings"

	"github.com/claude/liftrecap/internal/models"
)

// Keyword maps a substring of an exercise name to a category.
type Keyword struct {
	Text string
	Part models.BodyPart
}

// Table holds the lookup data for a Classifier.
type Table struct {
	Exact    map[string]models.BodyPart
	Keywords []Keyword
}

// Classifier is an immutable exercise-name lookup. Safe for concurrent use.
type Classifier struct {
	exact    map[string]models.BodyPart
	keywords []Keyword
}

// New builds a Classifier from a copy of t; later changes to t have no effect.
func New(t Table) *Classifier {
	c := &Classifier{
		exact:    make(map[string]models.BodyPart, len(t.Exact)),
		keywords: make([]Keyword, len(t.Keywords)),
	}
	for name, part := range t.Exact {
		c.exact[name] = part
	}
	copy(c.keywords, t.Keywords)
	return c
}

var defaultClassifier = New(DefaultTable())

// Default returns the classifier built from DefaultTable.
func Default() *Classifier {
	return defaultClassifier
}

// Classify returns the body part for an exercise name. A nil Classifier
// uses the default tables.
func (c *Classifier) Classify(exerciseName string) models.BodyPart {
	if c == nil {
		c = defaultClassifier
	}
	if part, ok := c.exact[exerciseName]; ok {
		return part
	}
	for _, kw := range c.keywords {
		if strings.Contains(exerciseName, kw.Text) {
			return kw.Part
		}
	}
	return models.Other
}
