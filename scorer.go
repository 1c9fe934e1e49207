package jobscore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/jamesainslie/go-jobscore/inference"
	"github.com/jamesainslie/go-jobscore/tokenizer"
)

// Scorer holds everything a scoring request needs: the vocabulary, the
// resolution policy and the pool of model sessions. Build one with New at
// startup and share it.
type Scorer struct {
	resolver tokenizer.Resolver
	maxLen   int
	pool     *inference.Pool
	scheme   Scheme
	sigmoid  bool
	logger   *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// Result is the outcome of scoring one text.
type Result struct {
	// Probability is the raw model output (after sigmoid, if enabled).
	Probability float32
	Assessment  Assessment
	Tokens      int
	Truncated   bool
}

// New creates a Scorer from a model file and an optional vocabulary file.
// An empty vocabPath hashes every token.
func New(modelPath, vocabPath string, opts ...Option) (*Scorer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	var vocab *tokenizer.Vocabulary
	if vocabPath != "" {
		v, err := tokenizer.LoadVocabulary(vocabPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrVocabularyFailed, err)
		}
		vocab = v
	}

	pool, err := inference.NewPool(cfg.poolSize, inference.SessionFactory(modelPath, cfg.session))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	s := newScorer(pool, vocab, cfg)
	s.logger.Info("scorer ready",
		"model", modelPath,
		"policy", s.resolver.Policy(),
		"vocab_size", vocabSize(vocab),
		"max_len", s.maxLen,
		"pool_size", pool.Size(),
	)
	return s, nil
}

func newScorer(pool *inference.Pool, vocab *tokenizer.Vocabulary, cfg config) *Scorer {
	return &Scorer{
		resolver: vocab.Resolver(),
		maxLen:   cfg.resolveMaxLen(vocab),
		pool:     pool,
		scheme:   cfg.scheme,
		sigmoid:  cfg.sigmoid,
		logger:   cfg.logger,
	}
}

// Score tokenizes text, runs the model and assesses the result.
func (s *Scorer) Score(ctx context.Context, text string) (Result, error) {
	if !s.ready() {
		return Result{}, ErrNotReady
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	seq, n := tokenizer.EncodeText(text, s.resolver, s.maxLen)
	s.logger.Debug("encoded text", "tokens", n, "max_len", s.maxLen, "policy", s.resolver.Policy())

	raw, err := s.pool.Predict(ctx, seq)
	if err != nil {
		if errors.Is(err, inference.ErrPoolClosed) {
			return Result{}, ErrNotReady
		}
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return Result{}, err
		}
		s.logger.Error("inference failed", "error", err)
		return Result{}, fmt.Errorf("%w: %w", ErrInferenceFailed, err)
	}

	prob := raw
	if s.sigmoid {
		prob = sigmoid(raw)
	}
	if math.IsNaN(float64(prob)) || prob < 0 || prob > 1 {
		s.logger.Error("score out of range", "score", prob)
		return Result{}, fmt.Errorf("%w: score %v outside [0, 1]", ErrInferenceFailed, prob)
	}

	return Result{
		Probability: prob,
		Assessment:  Assess(float64(prob), s.scheme),
		Tokens:      n,
		Truncated:   n > s.maxLen,
	}, nil
}

// ScorePosting scores the concatenated fields of p.
func (s *Scorer) ScorePosting(ctx context.Context, p Posting) (Result, error) {
	return s.Score(ctx, p.Text())
}

// Encode returns the model input for text without running the model.
// A nil Scorer returns nil.
func (s *Scorer) Encode(text string) tokenizer.Sequence {
	if s == nil || s.resolver == nil {
		return nil
	}
	seq, _ := tokenizer.EncodeText(text, s.resolver, s.maxLen)
	return seq
}

// MaxLen returns the encoded sequence length, or 0 for a nil Scorer.
func (s *Scorer) MaxLen() int {
	if s == nil {
		return 0
	}
	return s.maxLen
}

// Policy returns the id resolution policy in use, or "" for a nil Scorer.
func (s *Scorer) Policy() tokenizer.Policy {
	if s == nil || s.resolver == nil {
		return ""
	}
	return s.resolver.Policy()
}

// Scheme returns the risk labelling scheme.
func (s *Scorer) Scheme() Scheme {
	if s == nil {
		return Scheme{}
	}
	return s.scheme
}

func (s *Scorer) ready() bool {
	if s == nil || s.pool == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed
}

// Close releases all resources. Score returns ErrNotReady afterwards.
func (s *Scorer) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.pool != nil {
		return s.pool.Close()
	}
	return nil
}

func vocabSize(v *tokenizer.Vocabulary) int {
	if v == nil {
		return 0
	}
	return v.Size()
}

func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(-x))))
}
