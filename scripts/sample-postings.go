//go:build ignore

// Build the evaluation corpus from the raw labelled postings dataset.
// Keeps every fraudulent posting and every Nth legitimate one so the sample
// stays small but still has enough positives.
// Usage: go run ./scripts/sample-postings.go [-every 10]
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

func main() {
	inFile := flag.String("in", "testdata/fake_job_postings.csv", "Raw dataset")
	outFile := flag.String("out", "testdata/postings.csv", "Sampled corpus")
	every := flag.Int("every", 10, "Keep one legitimate posting in N")
	flag.Parse()

	fraud, legit, err := sample(*inFile, *outFile, *every)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  -> %s (%d fraudulent, %d legitimate)\n", *outFile, fraud, legit)
}

func sample(inPath, outPath string, every int) (fraud, legit int, err error) {
	if every < 1 {
		every = 1
	}

	in, err := os.Open(inPath)
	if err != nil {
		return 0, 0, fmt.Errorf("opening file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return 0, 0, fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	r := csv.NewReader(in)
	r.LazyQuotes = true
	w := csv.NewWriter(out)

	header, err := r.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("reading header: %w", err)
	}
	label := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "fraudulent") {
			label = i
		}
	}
	if label < 0 {
		return 0, 0, errors.New("missing fraudulent column")
	}
	if err := w.Write(header); err != nil {
		return 0, 0, err
	}

	seen := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, 0, fmt.Errorf("reading row: %w", err)
		}

		if strings.TrimSpace(rec[label]) == "1" {
			fraud++
		} else {
			seen++
			if seen%every != 0 {
				continue
			}
			legit++
		}
		if err := w.Write(rec); err != nil {
			return 0, 0, err
		}
	}

	w.Flush()
	return fraud, legit, w.Error()
}
