package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	jobscore "github.com/jamesainslie/go-jobscore"
	"github.com/jamesainslie/go-jobscore/internal/eval"
)

func main() {
	var (
		modelPath = flag.String("model", "", "Path to ONNX model file (required)")
		vocabPath = flag.String("vocab", "", "Path to vocabulary config")
		corpus    = flag.String("corpus", "testdata/postings.csv", "Labelled postings CSV")
		maxLen    = flag.Int("max-len", 300, "Sequence length when the vocabulary does not declare max_len")
		sigmoid   = flag.Bool("sigmoid", false, "Apply sigmoid to the model output")
		ortLib    = flag.String("ort-lib", os.Getenv("ONNXRUNTIME_LIB"), "Path to the onnxruntime shared library")
		workers   = flag.Int("workers", runtime.NumCPU(), "Concurrent scoring requests")
		threshold = flag.Float64("threshold", 0.5, "Fraud threshold")
		wp        = flag.Float64("wp", 1.0, "Precision weight")
		wr        = flag.Float64("wr", 1.0, "Recall weight")
		sweep     = flag.Bool("sweep", false, "Run threshold sweep")
		sweepMin  = flag.Float64("sweep-min", 0.05, "Sweep minimum threshold")
		sweepMax  = flag.Float64("sweep-max", 0.95, "Sweep maximum threshold")
		sweepStep = flag.Float64("sweep-step", 0.05, "Sweep step size")
	)
	flag.Parse()

	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "error: -model required")
		flag.Usage()
		os.Exit(1)
	}

	examples, err := eval.LoadCorpus(*corpus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d postings from %s\n\n", len(examples), *corpus)

	scorer, err := jobscore.New(*modelPath, *vocabPath,
		jobscore.WithMaxLen(*maxLen),
		jobscore.WithSigmoid(*sigmoid),
		jobscore.WithLibraryPath(*ortLib),
		jobscore.WithPoolSize(*workers),
		jobscore.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating scorer: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = scorer.Close() }()

	preds, skipped, err := eval.ScoreCorpus(context.Background(), scorer, examples, *workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error scoring corpus: %v\n", err)
		os.Exit(1)
	}
	if skipped > 0 {
		fmt.Printf("Skipped %d postings with no text\n\n", skipped)
	}

	cfg := eval.Config{
		Threshold:       *threshold,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}

	if *sweep {
		runSweep(preds, cfg, *sweepMin, *sweepMax, *sweepStep)
		return
	}
	printMetrics(eval.Evaluate(preds, cfg), cfg)
}

func runSweep(preds []eval.Prediction, cfg eval.Config, min, max, step float64) {
	thresholds := eval.SweepThresholds(min, max, step)

	fmt.Printf("Threshold Sweep Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s\n", "Thresh", "Prec", "Rec", "F1", "Weighted")

	results := eval.Sweep(preds, cfg, thresholds)

	// Print sorted by threshold for readability
	for _, t := range thresholds {
		for _, r := range results {
			if r.Threshold == t {
				fmt.Printf("%-8.3f %-8.2f %-8.2f %-8.2f %-8.2f\n",
					r.Threshold, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1, r.Metrics.WeightedScore)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: %.3f (Weighted: %.2f)\n", best.Threshold, best.Metrics.WeightedScore)
	}
}

func printMetrics(m eval.Metrics, cfg eval.Config) {
	fmt.Printf("Threshold: %.3f\n", cfg.Threshold)
	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Accuracy: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.Accuracy, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, TN: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.TrueNegatives, m.FalseNegatives)
}
