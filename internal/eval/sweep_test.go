package eval

import (
	"testing"
)

func TestSweepThresholds(t *testing.T) {
	thresholds := SweepThresholds(0.1, 0.8, 0.2)

	want := []float64{0.1, 0.3, 0.5, 0.7}
	if len(thresholds) != len(want) {
		t.Errorf("got %d thresholds, want %d", len(thresholds), len(want))
		t.Logf("got: %v", thresholds)
		return
	}

	for i := range want {
		diff := thresholds[i] - want[i]
		if diff < -0.001 || diff > 0.001 {
			t.Errorf("threshold[%d] = %v, want %v", i, thresholds[i], want[i])
		}
	}
}

func TestSweepThresholds_NoDrift(t *testing.T) {
	thresholds := SweepThresholds(0.05, 0.95, 0.05)
	if len(thresholds) != 18 {
		t.Fatalf("got %d thresholds, want 18: %v", len(thresholds), thresholds)
	}

	for i, got := range thresholds {
		want := float64(5*(i+1)) / 100
		if got != want {
			t.Errorf("threshold[%d] = %v, want exactly %v", i, got, want)
		}
	}

	// A score of exactly 0.7 must be flagged on the 0.700 row.
	preds := []Prediction{{Probability: 0.7, Fraudulent: true}}
	cfg := DefaultConfig()
	cfg.Threshold = thresholds[13]
	if m := Evaluate(preds, cfg); m.TruePositives != 1 {
		t.Errorf("at threshold %v: TruePositives = %d, want 1", thresholds[13], m.TruePositives)
	}
}

func TestSweepThresholds_Invalid(t *testing.T) {
	if got := SweepThresholds(0.5, 0.1, 0.1); got != nil {
		t.Errorf("expected nil for inverted range, got %v", got)
	}
	if got := SweepThresholds(0.1, 0.5, 0); got != nil {
		t.Errorf("expected nil for zero step, got %v", got)
	}
}

func TestSweep(t *testing.T) {
	preds := []Prediction{
		{Probability: 0.95, Fraudulent: true},
		{Probability: 0.75, Fraudulent: true},
		{Probability: 0.65, Fraudulent: false},
		{Probability: 0.2, Fraudulent: false},
	}

	results := Sweep(preds, DefaultConfig(), []float64{0.1, 0.7, 0.9})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// 0.7 separates the classes perfectly.
	if results[0].Threshold != 0.7 {
		t.Errorf("best threshold = %v, want 0.7", results[0].Threshold)
	}
	if results[0].Metrics.F1 != 1 {
		t.Errorf("best F1 = %v, want 1", results[0].Metrics.F1)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Metrics.WeightedScore > results[i-1].Metrics.WeightedScore {
			t.Errorf("results not sorted at %d", i)
		}
	}
}
