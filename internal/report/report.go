// Package report turns a similarity matrix into what the user is shown:
// scores below LowThreshold are hidden and the rest are graded.
package report

import (
	"fmt"

	"github.com/dmitrijs2005/docsim/internal/models"
	"github.com/dmitrijs2005/docsim/internal/similarity"
)

// Grade boundaries, in percent. Each is the inclusive lower bound of its level.
const (
	LowThreshold    = 30.0
	MediumThreshold = 50.0
	HighThreshold   = 80.0
)

type Level int

const (
	LevelHidden Level = iota
	LevelLow
	LevelMedium
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	default:
		return "hidden"
	}
}

// Classify grades a similarity percentage.
func Classify(score float64) Level {
	switch {
	case score < LowThreshold:
		return LevelHidden
	case score < MediumThreshold:
		return LevelLow
	case score < HighThreshold:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// FormatScore renders a percentage with one decimal, e.g. "57.1%".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score)
}

type Match struct {
	Document *models.Document
	Score    float64
	Level    Level
}

// Entry lists the visible matches of one document.
type Entry struct {
	Document *models.Document
	Matches  []Match
}

// Build produces one Entry per non-nil document in docs, in the same order.
// Matches keep input order and exclude hidden scores.
func Build(docs []*models.Document, m similarity.Matrix) []Entry {
	entries := make([]Entry, 0, len(docs))

	for _, d := range docs {
		if d == nil {
			continue
		}
		e := Entry{Document: d}
		for _, other := range docs {
			if other == nil || other.ID == d.ID {
				continue
			}
			score, ok := m.Get(d.ID, other.ID)
			if !ok {
				continue
			}
			level := Classify(score)
			if level == LevelHidden {
				continue
			}
			e.Matches = append(e.Matches, Match{Document: other, Score: score, Level: level})
		}
		entries = append(entries, e)
	}

	return entries
}
