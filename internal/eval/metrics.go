package eval

import "github.com/samber/lo"

// Config holds evaluation parameters.
type Config struct {
	Threshold       float64
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:       0.5,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results. Fraud is the positive class.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	TrueNegatives  int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	Accuracy       float64
	WeightedScore  float64
}

// Evaluate counts a prediction as fraud when its probability is at or above
// cfg.Threshold.
func Evaluate(preds []Prediction, cfg Config) Metrics {
	flagged := func(p Prediction) bool { return p.Probability >= cfg.Threshold }

	return ComputeMetrics(
		lo.CountBy(preds, func(p Prediction) bool { return flagged(p) && p.Fraudulent }),
		lo.CountBy(preds, func(p Prediction) bool { return flagged(p) && !p.Fraudulent }),
		lo.CountBy(preds, func(p Prediction) bool { return !flagged(p) && !p.Fraudulent }),
		lo.CountBy(preds, func(p Prediction) bool { return !flagged(p) && p.Fraudulent }),
		cfg,
	)
}

// ComputeMetrics derives rates from confusion counts.
func ComputeMetrics(tp, fp, tn, fn int, cfg Config) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		TrueNegatives:  tn,
		FalseNegatives: fn,
	}

	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	if total := tp + fp + tn + fn; total > 0 {
		m.Accuracy = float64(tp+tn) / float64(total)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}

	return m
}
