package eval

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// SweepResult holds metrics for one threshold value.
type SweepResult struct {
	Threshold float64
	Metrics   Metrics
}

// SweepThresholds generates threshold values from min up to, but excluding,
// max. Each value is min + i*step rounded to the precision of min and step,
// so 0.05 steps land on 0.7 rather than 0.7000000000000001.
func SweepThresholds(min, max, step float64) []float64 {
	if step <= 0 || min >= max {
		return nil
	}

	n := int(math.Ceil((max-min)/step - 1e-9))
	scale := math.Pow10(lo.Max([]int{decimals(min), decimals(step)}))
	return lo.Times(n, func(i int) float64 {
		return math.Round((min+float64(i)*step)*scale) / scale
	})
}

// decimals returns the number of fractional digits needed to write v,
// capped at 9.
func decimals(v float64) int {
	for d := 0; d < 9; d++ {
		scaled := v * math.Pow10(d)
		if math.Abs(scaled-math.Round(scaled)) < 1e-9*math.Max(1, math.Abs(scaled)) {
			return d
		}
	}
	return 9
}

// Sweep evaluates every threshold against the same predictions and returns
// results sorted by weighted score, best first. Ties keep threshold order.
func Sweep(preds []Prediction, cfg Config, thresholds []float64) []SweepResult {
	results := lo.Map(thresholds, func(t float64, _ int) SweepResult {
		c := cfg
		c.Threshold = t
		return SweepResult{Threshold: t, Metrics: Evaluate(preds, c)}
	})

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results
}
