package sierracompiler

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/starknet-sequencer/mempool/core/types"
)

// workerPool offloads compilation onto goroutines with a bounded number of
// concurrent compiles in flight, so callers never block the caller's own
// goroutine on the compiler inline and the node never runs more concurrent
// compiles than its configured worker count.
type workerPool struct {
	sem *semaphore.Weighted
}

func newWorkerPool(maxConcurrent int) *workerPool {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &workerPool{sem: semaphore.NewWeighted(int64(maxConcurrent))}
}

// run executes fn on its own goroutine, recovering any panic and reporting
// it as ErrCompilationPanic instead of letting it escape. Acquiring the
// semaphore blocks the caller until a compile slot frees up, or ctx is
// canceled.
func (p *workerPool) run(ctx context.Context, fn func() (*types.CompiledClass, error)) (*types.CompiledClass, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)

	type outcome struct {
		result *types.CompiledClass
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: &ErrCompilationPanic{Recovered: r}}
			}
		}()
		result, err := fn()
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
