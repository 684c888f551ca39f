package ggedit

import (
	"github.com/gogpu/ggedit/internal/filter"
	"github.com/gogpu/ggedit/internal/parallel"
)

// Option configures an Editor during creation.
//
// Example:
//
//	// Shared default executor, 2 brightness workers
//	ed := ggedit.New()
//
//	// At most 8 filter goroutines at once
//	ed := ggedit.New(ggedit.WithMaxWorkers(8))
type Option func(*options)

// options holds optional configuration for Editor creation.
type options struct {
	exec              *parallel.Executor
	brightnessWorkers int
}

// defaultOptions returns the default editor options.
func defaultOptions() options {
	return options{
		exec:              nil, // parallel.Default()
		brightnessWorkers: filter.DefaultBrightnessWorkers,
	}
}

// WithBrightnessWorkers sets how many row workers Brightness uses.
// The count is clamped to [1, height] like every other worker hint.
func WithBrightnessWorkers(n int) Option {
	return func(o *options) {
		o.brightnessWorkers = n
	}
}

// WithMaxWorkers gives the Editor a private executor that runs at most n
// filter goroutines at once. When a filter asks for more ranges than the
// budget allows, the excess ranges run on the calling goroutine.
// n <= 0 removes the limit.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		o.exec = parallel.NewExecutor(n)
	}
}

// withExecutor injects an executor; tests use it to share budgets.
func withExecutor(exec *parallel.Executor) Option {
	return func(o *options) {
		o.exec = exec
	}
}
