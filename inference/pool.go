package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Acquire once the pool is closed.
var ErrPoolClosed = errors.New("inference: pool is closed")

// Factory opens one predictor.
type Factory func() (Predictor, error)

// SessionFactory returns a Factory that opens ONNX sessions on modelPath.
func SessionFactory(modelPath string, cfg SessionConfig) Factory {
	return func() (Predictor, error) {
		return NewSession(modelPath, cfg)
	}
}

// Pool hands out a fixed set of predictors to concurrent callers.
type Pool struct {
	predictors chan Predictor
	size       int
	mu         sync.Mutex
	closed     bool
}

// NewPool opens size predictors with open. Sizes below 1 become 1.
func NewPool(size int, open Factory) (*Pool, error) {
	if size <= 0 {
		size = 1
	}

	pool := &Pool{
		predictors: make(chan Predictor, size),
		size:       size,
	}

	for i := 0; i < size; i++ {
		p, err := open()
		if err != nil {
			_ = pool.Close() // original error takes precedence
			return nil, fmt.Errorf("creating predictor %d: %w", i, err)
		}
		pool.predictors <- p
	}

	return pool, nil
}

// Acquire takes a predictor, blocking until one is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (Predictor, error) {
	select {
	case pr, ok := <-p.predictors:
		if !ok {
			return nil, ErrPoolClosed
		}
		return pr, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a predictor to the pool, or closes it if the pool is
// closed or already full.
func (p *Pool) Release(pr Predictor) {
	if pr == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = pr.Close()
		return
	}

	select {
	case p.predictors <- pr:
	default:
		_ = pr.Close()
	}
}

// Predict runs one prediction on a pooled predictor.
func (p *Pool) Predict(ctx context.Context, ids []int32) (float32, error) {
	pr, err := p.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer p.Release(pr)

	return pr.Predict(ctx, ids)
}

// Close closes every idle predictor. Predictors still checked out are closed
// when released. Close is idempotent.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.predictors)
	p.mu.Unlock()

	var errs []error
	for pr := range p.predictors {
		if err := pr.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Size returns the pool size.
func (p *Pool) Size() int {
	return p.size
}
