package eval

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	jobscore "github.com/jamesainslie/go-jobscore"
)

// Scorer is the part of *jobscore.Scorer the harness needs.
type Scorer interface {
	ScorePosting(ctx context.Context, p jobscore.Posting) (jobscore.Result, error)
}

// Prediction pairs a model probability with the ground-truth label.
type Prediction struct {
	ID          string
	Probability float64
	Fraudulent  bool
}

// ScoreCorpus scores every example with up to workers concurrent requests.
// Examples with no text are skipped and counted. Any other error aborts the run.
func ScoreCorpus(ctx context.Context, s Scorer, examples []Example, workers int) (preds []Prediction, skipped int, err error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]*Prediction, len(examples))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ex := range examples {
		i, ex := i, ex
		g.Go(func() error {
			res, err := s.ScorePosting(ctx, ex.Posting)
			if errors.Is(err, jobscore.ErrEmptyInput) {
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			if err != nil {
				return fmt.Errorf("scoring %s: %w", ex.ID, err)
			}
			results[i] = &Prediction{
				ID:          ex.ID,
				Probability: float64(res.Probability),
				Fraudulent:  ex.Fraudulent,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	preds = make([]Prediction, 0, len(examples)-skipped)
	for _, p := range results {
		if p != nil {
			preds = append(preds, *p)
		}
	}
	return preds, skipped, nil
}
