package jobscore

import (
	"fmt"
	"math"
	"strings"
)

// Level is a coarse fraud risk category.
type Level int

const (
	LevelLow Level = iota
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
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Scheme maps a score to a Level. A score at or above High is high risk; at
// or above Medium is medium risk. Medium equal to High disables the middle tier.
type Scheme struct {
	Medium float64
	High   float64
}

var (
	// ThreeTier splits scores at 0.4 and 0.7.
	ThreeTier = Scheme{Medium: 0.4, High: 0.7}

	// Binary splits scores at 0.5.
	Binary = Scheme{Medium: 0.5, High: 0.5}
)

// ParseScheme accepts "three-tier" or "binary".
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "three-tier", "threetier", "":
		return ThreeTier, nil
	case "binary":
		return Binary, nil
	default:
		return Scheme{}, fmt.Errorf("unknown risk scheme %q", name)
	}
}

// Classify returns the Level of score.
func (s Scheme) Classify(score float64) Level {
	switch {
	case score >= s.High:
		return LevelHigh
	case score >= s.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Assessment is the presentation-ready view of a score.
type Assessment struct {
	// Score is the probability rounded to three decimals.
	Score       float64
	Level       Level
	Label       string
	Explanation string
}

const scoreNote = " Score is the predicted probability that the posting is fraudulent (0-1)."

// Assess rounds score to three decimals and classifies the rounded value, so
// the label always agrees with the number shown next to it.
func Assess(score float64, s Scheme) Assessment {
	rounded := math.Round(score*1000) / 1000
	level := s.Classify(rounded)

	a := Assessment{Score: rounded, Level: level}
	switch level {
	case LevelHigh:
		a.Label = "High risk"
		a.Explanation = "The model assigns a high probability of fraud. Treat this job posting with caution."
	case LevelMedium:
		a.Label = "Medium risk"
		a.Explanation = "The model sees mixed signals. Review this posting carefully before applying."
	default:
		a.Label = "Low risk"
		a.Explanation = "The model assigns a low probability of fraud for this job posting."
	}
	a.Explanation += scoreNote
	return a
}
