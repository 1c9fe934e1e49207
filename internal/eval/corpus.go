// Package eval measures scorer quality on a labelled corpus of job postings.
package eval

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	jobscore "github.com/jamesainslie/go-jobscore"
)

// Column names of the labelled posting dataset.
const (
	colTitle          = "title"
	colCompany        = "company_profile"
	colDescription    = "description"
	colRequirements   = "requirements"
	colBenefits       = "benefits"
	colLocation       = "location"
	colSalary         = "salary_range"
	colEmploymentType = "employment_type"
	colIndustry       = "industry"
	colLabel          = "fraudulent"
)

// Example is one labelled posting.
type Example struct {
	ID         string // job_id column, or the 1-based row number
	Posting    jobscore.Posting
	Fraudulent bool
}

// LoadCorpus reads a labelled CSV file. The header must contain the
// fraudulent column; missing text columns are treated as empty.
func LoadCorpus(path string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadCorpus(f)
}

// ReadCorpus parses labelled CSV from r.
func ReadCorpus(r io.Reader) ([]Example, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty corpus")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols[colLabel]; !ok {
		return nil, fmt.Errorf("missing %q column", colLabel)
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var examples []Example
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		label, err := parseLabel(field(rec, colLabel))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		id := field(rec, "job_id")
		if id == "" {
			id = strconv.Itoa(row)
		}

		examples = append(examples, Example{
			ID: id,
			Posting: jobscore.Posting{
				Title:          field(rec, colTitle),
				Company:        field(rec, colCompany),
				Description:    field(rec, colDescription),
				Requirements:   field(rec, colRequirements),
				Benefits:       field(rec, colBenefits),
				Location:       field(rec, colLocation),
				Salary:         field(rec, colSalary),
				EmploymentType: field(rec, colEmploymentType),
				Industry:       field(rec, colIndustry),
			},
			Fraudulent: label,
		})
	}

	return examples, nil
}

func parseLabel(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes":
		return true, nil
	case "0", "false", "f", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s label %q", colLabel, s)
	}
}
