package jobscore

import (
	"log/slog"
	"runtime"

	"github.com/jamesainslie/go-jobscore/inference"
	"github.com/jamesainslie/go-jobscore/tokenizer"
)

// Option configures a Scorer.
type Option func(*config)

type config struct {
	maxLen   int
	scheme   Scheme
	poolSize int
	sigmoid  bool
	session  inference.SessionConfig
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{
		scheme:   ThreeTier,
		poolSize: runtime.NumCPU(),
		logger:   slog.Default(),
	}
}

// WithMaxLen sets the sequence length when the vocabulary does not declare one
// (default: 300).
func WithMaxLen(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLen = n
		}
	}
}

// WithScheme sets the risk labelling scheme (default: ThreeTier).
func WithScheme(s Scheme) Option {
	return func(c *config) {
		c.scheme = s
	}
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithSigmoid applies a sigmoid to the model output, for models that end in a
// logit rather than a probability.
func WithSigmoid(enabled bool) Option {
	return func(c *config) {
		c.sigmoid = enabled
	}
}

// WithLibraryPath sets the onnxruntime shared library location.
func WithLibraryPath(path string) Option {
	return func(c *config) {
		c.session.LibraryPath = path
	}
}

// WithTensorNames overrides the model's input and output tensor names
// (default: "input_ids" and "score").
func WithTensorNames(input, output string) Option {
	return func(c *config) {
		c.session.InputName = input
		c.session.OutputName = output
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// resolveMaxLen picks the sequence length: vocabulary first, then option, then
// the training default.
func (c config) resolveMaxLen(v *tokenizer.Vocabulary) int {
	if v != nil && v.MaxLen() > 0 {
		return v.MaxLen()
	}
	if c.maxLen > 0 {
		return c.maxLen
	}
	return tokenizer.DefaultMaxLen
}
