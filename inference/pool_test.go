package inference

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakePredictor returns a fixed score and counts calls.
type fakePredictor struct {
	score  float32
	err    error
	calls  atomic.Int64
	closed atomic.Bool
}

func (f *fakePredictor) Predict(ctx context.Context, ids []int32) (float32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.calls.Add(1)
	return f.score, f.err
}

func (f *fakePredictor) Close() error {
	f.closed.Store(true)
	return nil
}

func fakeFactory(created *[]*fakePredictor) Factory {
	var mu sync.Mutex
	return func() (Predictor, error) {
		mu.Lock()
		defer mu.Unlock()
		p := &fakePredictor{score: 0.25}
		*created = append(*created, p)
		return p, nil
	}
}

func TestNewPool_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		var created []*fakePredictor
		pool, err := NewPool(size, fakeFactory(&created))
		if err != nil {
			t.Fatalf("NewPool(%d) failed: %v", size, err)
		}

		if pool.Size() != 1 {
			t.Errorf("NewPool(%d): expected size 1, got %d", size, pool.Size())
		}
		if len(created) != 1 {
			t.Errorf("NewPool(%d): expected 1 predictor, got %d", size, len(created))
		}
		_ = pool.Close()
	}
}

func TestNewPool_FactoryError(t *testing.T) {
	var created []*fakePredictor
	ok := fakeFactory(&created)
	calls := 0
	open := func() (Predictor, error) {
		calls++
		if calls == 3 {
			return nil, errors.New("boom")
		}
		return ok()
	}

	_, err := NewPool(4, open)
	if err == nil {
		t.Fatal("expected error from failing factory")
	}
	for i, p := range created {
		if !p.closed.Load() {
			t.Errorf("predictor %d not closed after failed construction", i)
		}
	}
}

func TestNewPool_ModelNotFound(t *testing.T) {
	_, err := NewPool(2, SessionFactory("../testdata/nonexistent.onnx", SessionConfig{}))
	if err == nil {
		t.Error("expected error for non-existent model file")
	}
}

func TestPool_AcquireRelease(t *testing.T) {
	var created []*fakePredictor
	pool, err := NewPool(2, fakeFactory(&created))
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	ctx := context.Background()

	p1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 1 failed: %v", err)
	}
	p2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 2 failed: %v", err)
	}

	// Third acquire should block until the deadline.
	ctx3, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(ctx3); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}

	pool.Release(p1)
	p3, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 3 failed: %v", err)
	}

	pool.Release(p2)
	pool.Release(p3)
}

func TestPool_ReleaseNil(t *testing.T) {
	var created []*fakePredictor
	pool, err := NewPool(1, fakeFactory(&created))
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	pool.Release(nil)
}

func TestPool_ReleaseWhenFull(t *testing.T) {
	var created []*fakePredictor
	pool, err := NewPool(1, fakeFactory(&created))
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	extra := &fakePredictor{}
	pool.Release(extra)
	if !extra.closed.Load() {
		t.Error("expected excess predictor to be closed")
	}
}

func TestPool_Close_Idempotent(t *testing.T) {
	var created []*fakePredictor
	pool, err := NewPool(2, fakeFactory(&created))
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}

	if err := pool.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	for i, p := range created {
		if !p.closed.Load() {
			t.Errorf("predictor %d not closed", i)
		}
	}
}

func TestPool_AcquireAfterClose(t *testing.T) {
	var created []*fakePredictor
	pool, err := NewPool(1, fakeFactory(&created))
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	_ = pool.Close()

	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPool_ReleaseAfterClose(t *testing.T) {
	var created []*fakePredictor
	pool, err := NewPool(1, fakeFactory(&created))
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}

	p, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	pool.Release(p)
	if !created[0].closed.Load() {
		t.Error("expected predictor released after Close to be closed")
	}
}

func TestPool_AcquireContextCancellation(t *testing.T) {
	var created []*fakePredictor
	pool, err := NewPool(1, fakeFactory(&created))
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	p, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer pool.Release(p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := pool.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPool_Predict(t *testing.T) {
	var created []*fakePredictor
	pool, err := NewPool(1, fakeFactory(&created))
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	score, err := pool.Predict(context.Background(), []int32{4, 5, 0})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if score != 0.25 {
		t.Errorf("score = %v, want 0.25", score)
	}

	// The predictor must be back in the pool.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	p, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("predictor not returned to pool: %v", err)
	}
	pool.Release(p)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	var created []*fakePredictor
	pool, err := NewPool(3, fakeFactory(&created))
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	const goroutines, iterations = 10, 5
	var wg sync.WaitGroup
	var failures atomic.Int64

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				if _, err := pool.Predict(context.Background(), []int32{1}); err != nil {
					failures.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("%d predictions failed", failures.Load())
	}

	var total int64
	for _, p := range created {
		total += p.calls.Load()
	}
	if total != goroutines*iterations {
		t.Errorf("expected %d calls, got %d", goroutines*iterations, total)
	}
}
