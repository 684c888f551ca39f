package parallel

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// DefaultMaxWorkers is the worker budget of the default executor.
const DefaultMaxWorkers = 1024

// Executor runs row tasks fork-join style, one goroutine per row range.
//
// The worker budget bounds how many workers may run at once across all
// concurrent Run calls sharing the executor. Workers are started fresh on
// every Run; a refused start only affects the Run in which it happened.
//
// Thread safety: Executor is safe for concurrent use.
type Executor struct {
	// budget admits workers; nil means unlimited.
	budget *semaphore.Weighted

	// maxWorkers is the configured budget (0 for unlimited).
	maxWorkers int

	// fallbacks counts Run calls that finished some ranges inline.
	fallbacks atomic.Int64
}

// NewExecutor creates an executor that runs at most maxWorkers workers at
// once. If maxWorkers is 0 or negative, the number of workers is unbounded.
func NewExecutor(maxWorkers int) *Executor {
	e := &Executor{}
	if maxWorkers > 0 {
		e.budget = semaphore.NewWeighted(int64(maxWorkers))
		e.maxWorkers = maxWorkers
	}
	return e
}

var defaultExecutor = NewExecutor(DefaultMaxWorkers)

// Default returns the shared executor used when none is supplied.
func Default() *Executor {
	return defaultExecutor
}

// MaxWorkers returns the worker budget, or 0 if unbounded.
func (e *Executor) MaxWorkers() int {
	return e.maxWorkers
}

// Fallbacks returns how many Run calls had to execute ranges inline because
// a worker could not be started.
func (e *Executor) Fallbacks() int64 {
	return e.fallbacks.Load()
}

// Run invokes task once per range, each on its own worker, and blocks until
// every invocation has returned.
//
// task must only write rows inside the range it receives. If a worker cannot
// be started, that range and all remaining ones run on the calling goroutine
// before Run waits for the workers already started.
func (e *Executor) Run(ranges []RowRange, task func(RowRange)) {
	switch len(ranges) {
	case 0:
		return
	case 1:
		task(ranges[0])
		return
	}

	var wg sync.WaitGroup
	for i, r := range ranges {
		if !e.acquire() {
			e.fallbacks.Add(1)
			logger().Warn("parallel: worker start refused, running remaining ranges inline",
				"range", i, "remaining", len(ranges)-i, "budget", e.maxWorkers)
			for _, rest := range ranges[i:] {
				task(rest)
			}
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer e.release()
			task(r)
		}()
	}
	wg.Wait()
}

// ForRows partitions [0, totalRows) for the requested number of workers and
// runs task over the ranges. It returns the number of ranges dispatched.
func (e *Executor) ForRows(totalRows, workers int, task func(RowRange)) int {
	ranges := PartitionRows(totalRows, workers)
	e.Run(ranges, task)
	return len(ranges)
}

func (e *Executor) acquire() bool {
	if e.budget == nil {
		return true
	}
	return e.budget.TryAcquire(1)
}

func (e *Executor) release() {
	if e.budget != nil {
		e.budget.Release(1)
	}
}
