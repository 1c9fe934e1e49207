package jobscore

import (
	"strings"
	"testing"
)

func TestScheme_Classify(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		score  float64
		want   Level
	}{
		{"three-tier zero", ThreeTier, 0, LevelLow},
		{"three-tier below medium", ThreeTier, 0.399, LevelLow},
		{"three-tier medium boundary", ThreeTier, 0.4, LevelMedium},
		{"three-tier below high", ThreeTier, 0.699, LevelMedium},
		{"three-tier high boundary", ThreeTier, 0.7, LevelHigh},
		{"three-tier one", ThreeTier, 1, LevelHigh},
		{"binary below", Binary, 0.499, LevelLow},
		{"binary boundary", Binary, 0.5, LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scheme.Classify(tt.score); got != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.score, got, tt.want)
			}
		})
	}
}

func TestAssess(t *testing.T) {
	tests := []struct {
		score     float64
		wantScore float64
		wantLabel string
	}{
		{0.7, 0.7, "High risk"},
		{0.4, 0.4, "Medium risk"},
		{0.12345, 0.123, "Low risk"},
		// Rounds up to 0.7 before classification.
		{0.6996, 0.7, "High risk"},
		{0.3994, 0.399, "Low risk"},
	}

	for _, tt := range tests {
		a := Assess(tt.score, ThreeTier)
		if a.Score != tt.wantScore {
			t.Errorf("Assess(%v).Score = %v, want %v", tt.score, a.Score, tt.wantScore)
		}
		if a.Label != tt.wantLabel {
			t.Errorf("Assess(%v).Label = %q, want %q", tt.score, a.Label, tt.wantLabel)
		}
		if !strings.HasSuffix(a.Explanation, scoreNote) {
			t.Errorf("Assess(%v).Explanation missing score note: %q", tt.score, a.Explanation)
		}
	}
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		input   string
		want    Scheme
		wantErr bool
	}{
		{"three-tier", ThreeTier, false},
		{"", ThreeTier, false},
		{"Binary", Binary, false},
		{"five-tier", Scheme{}, true},
	}

	for _, tt := range tests {
		got, err := ParseScheme(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScheme(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScheme(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	if LevelHigh.String() != "high" || Level(9).String() != "Level(9)" {
		t.Errorf("unexpected Level strings: %s %s", LevelHigh, Level(9))
	}
}
