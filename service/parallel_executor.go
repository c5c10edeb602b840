package service

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// ParallelExecutorImpl fans work for independent files out to a bounded
// worker pool. Workers share nothing; each gets its own resources via the
// workerState factory, which matters for non-reentrant parsers.
type ParallelExecutorImpl struct {
	workers int
	timeout time.Duration
}

// NewParallelExecutor creates an executor with the given pool size.
// workers <= 0 means one worker per CPU. No timeout is applied by
// default; deadlines are the caller's responsibility, through the
// context or SetTimeout.
func NewParallelExecutor(workers int) *ParallelExecutorImpl {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ParallelExecutorImpl{
		workers: workers,
	}
}

// SetTimeout sets an optional wall-clock budget for one execution.
// Zero, the default, disables the internal deadline.
func (pe *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	pe.timeout = timeout
}

// Workers returns the configured pool size
func (pe *ParallelExecutorImpl) Workers() int {
	return pe.workers
}

// ExecuteOnFiles processes the files through the pool. newState is invoked
// once per worker; its result is handed to every process call on that
// worker. Dispatch stops on context cancellation and the context error is
// returned; already dispatched files still finish.
func (pe *ParallelExecutorImpl) ExecuteOnFiles(
	ctx context.Context,
	files []string,
	newState func() interface{},
	process func(ctx context.Context, state interface{}, path string),
) error {
	if len(files) == 0 {
		return nil
	}

	if pe.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pe.timeout)
		defer cancel()
	}

	jobs := make(chan string)

	var wg sync.WaitGroup
	workers := pe.workers
	if workers > len(files) {
		workers = len(files)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var state interface{}
			if newState != nil {
				state = newState()
			}
			for path := range jobs {
				process(ctx, state, path)
			}
		}()
	}

	var dispatchErr error
dispatch:
	for _, path := range files {
		select {
		case jobs <- path:
		case <-ctx.Done():
			dispatchErr = ctx.Err()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	return dispatchErr
}
