// Package inference runs the fraud classifier through ONNX Runtime.
package inference

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Default tensor names of the exported classifier.
const (
	DefaultInputName  = "input_ids"
	DefaultOutputName = "score"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// ErrSessionClosed is returned by Predict after Close.
var ErrSessionClosed = errors.New("inference: session is closed")

// Predictor scores one encoded sequence.
type Predictor interface {
	Predict(ctx context.Context, ids []int32) (float32, error)
	Close() error
}

// SessionConfig describes how to open the model.
type SessionConfig struct {
	// LibraryPath points at the onnxruntime shared library. Empty uses the
	// onnxruntime_go default lookup.
	LibraryPath string
	InputName   string
	OutputName  string
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.InputName == "" {
		c.InputName = DefaultInputName
	}
	if c.OutputName == "" {
		c.OutputName = DefaultOutputName
	}
	return c
}

// initORT initializes ONNX Runtime environment once. The library path of the
// first call wins.
func initORT(libraryPath string) error {
	ortEnvOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Session wraps an ONNX Runtime session for the classifier.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from a model file.
func NewSession(modelPath string, cfg SessionConfig) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	cfg = cfg.withDefaults()
	if err := initORT(cfg.LibraryPath); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }()

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Predict feeds ids to the model as an int32 tensor of shape [1, len(ids)]
// and returns the first value of the output.
//
// Both tensors are destroyed before Predict returns, on success or failure.
func (s *Session) Predict(ctx context.Context, ids []int32) (float32, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSessionClosed
	}
	if len(ids) == 0 {
		return 0, errors.New("empty input sequence")
	}

	input, err := ort.NewTensor(ort.NewShape(1, int64(len(ids))), ids)
	if err != nil {
		return 0, fmt.Errorf("creating input tensor: %w", err)
	}
	defer func() { _ = input.Destroy() }()

	outputs := []ort.Value{nil}
	if err := s.session.Run([]ort.Value{input}, outputs); err != nil {
		return 0, fmt.Errorf("running inference: %w", err)
	}
	if outputs[0] == nil {
		return 0, errors.New("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	scores, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return 0, errors.New("unexpected output tensor type")
	}
	data := scores.GetData()
	if len(data) == 0 {
		return 0, errors.New("empty output tensor")
	}
	return data[0], nil
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
