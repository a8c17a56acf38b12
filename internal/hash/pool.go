package hash

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool runs bcrypt work on its own goroutines, bounded by a weighted
// semaphore. Request handlers stay responsive to cancellation while the
// CPU-bound hashing proceeds off their dispatch path, and the bound keeps a
// burst of signups from saturating every core.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a pool admitting at most size concurrent hash operations.
// size <= 0 defaults to GOMAXPROCS.
func NewPool(size int64) *Pool {
	if size <= 0 {
		size = int64(runtime.GOMAXPROCS(0))
	}
	return &Pool{sem: semaphore.NewWeighted(size)}
}

type hashResult struct {
	hash string
	err  error
}

func (p *Pool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}

	res := make(chan hashResult, 1)
	go func() {
		defer p.sem.Release(1)
		h, err := HashPassword(password)
		res <- hashResult{hash: h, err: err}
	}()

	select {
	case r := <-res:
		return r.hash, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *Pool) Compare(ctx context.Context, hash, password string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}

	res := make(chan bool, 1)
	go func() {
		defer p.sem.Release(1)
		res <- CheckPassword(hash, password)
	}()

	select {
	case ok := <-res:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
