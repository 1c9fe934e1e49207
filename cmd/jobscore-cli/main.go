package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	jobscore "github.com/jamesainslie/go-jobscore"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	modelPath := flag.String("model", "", "Path to ONNX model file")
	vocabPath := flag.String("vocab", "", "Path to vocabulary config (.json or .pb); empty hashes every token")
	maxLen := flag.Int("max-len", 300, "Sequence length when the vocabulary does not declare max_len")
	scheme := flag.String("scheme", "three-tier", "Risk scheme: three-tier or binary")
	sigmoid := flag.Bool("sigmoid", false, "Apply sigmoid to the model output (model emits logits)")
	ortLib := flag.String("ort-lib", os.Getenv("ONNXRUNTIME_LIB"), "Path to the onnxruntime shared library")
	inputName := flag.String("input-name", "", "Model input tensor name (default input_ids)")
	outputName := flag.String("output-name", "", "Model output tensor name (default score)")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "Print version and exit")

	var p jobscore.Posting
	flag.StringVar(&p.Title, "title", "", "Job title")
	flag.StringVar(&p.Company, "company", "", "Company profile")
	flag.StringVar(&p.Description, "description", "", "Job description")
	flag.StringVar(&p.Requirements, "requirements", "", "Requirements")
	flag.StringVar(&p.Benefits, "benefits", "", "Benefits")
	flag.StringVar(&p.Location, "location", "", "Location")
	flag.StringVar(&p.Salary, "salary", "", "Salary range")
	flag.StringVar(&p.EmploymentType, "employment", "", "Employment type")
	flag.StringVar(&p.Industry, "industry", "", "Industry")

	flag.Parse()

	if *showVersion {
		fmt.Printf("jobscore-cli %s (%s %s)\n", version, commit, date)
		return
	}

	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: jobscore-cli -model MODEL [-vocab VOCAB] [OPTIONS] [TEXT | -title ... -description ...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Free text wins over labelled fields.
	text := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(text) == "" {
		text = p.Text()
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "Error: please enter at least some job information")
		os.Exit(1)
	}

	riskScheme, err := jobscore.ParseScheme(*scheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	scorer, err := jobscore.New(*modelPath, *vocabPath,
		jobscore.WithMaxLen(*maxLen),
		jobscore.WithScheme(riskScheme),
		jobscore.WithSigmoid(*sigmoid),
		jobscore.WithLibraryPath(*ortLib),
		jobscore.WithTensorNames(*inputName, *outputName),
		jobscore.WithPoolSize(1),
		jobscore.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = scorer.Close() }() // Cleanup error ignored in CLI

	res, err := scorer.Score(context.Background(), text)
	if err != nil {
		switch {
		case errors.Is(err, jobscore.ErrEmptyInput):
			fmt.Fprintln(os.Stderr, "Error: please enter at least some job information")
		case errors.Is(err, jobscore.ErrNotReady):
			fmt.Fprintln(os.Stderr, "Error: model is not loaded yet, please wait")
		default:
			fmt.Fprintln(os.Stderr, "Error: scoring failed, please try again")
		}
		os.Exit(1)
	}

	fmt.Printf("Score: %.3f\n", res.Assessment.Score)
	fmt.Printf("Risk: %s\n", res.Assessment.Label)
	fmt.Printf("%s\n", res.Assessment.Explanation)
	if res.Truncated {
		fmt.Printf("Note: only the first %d of %d words were scored.\n", scorer.MaxLen(), res.Tokens)
	}
}
