package parfor

import (
	"context"
	"sync/atomic"
)

type (
	// TaskRunner runs a single task at idx, on behalf of a job. The default,
	// installed unless SetTaskRunner is called, is to call fn directly.
	TaskRunner func(ctx context.Context, fn TaskFunc, idx int) error

	// ParallelForRunner implements an entire SubmitParallelFor call: pushing
	// the job, waking workers, and cooperatively participating as the
	// owner. The default, installed unless SetParallelForRunner is called,
	// is (*Pool).defaultParallelFor.
	ParallelForRunner func(ctx context.Context, p *Pool, min, size int, fn TaskFunc) error
)

var (
	customDoTask   atomic.Pointer[TaskRunner]
	customDoParFor atomic.Pointer[ParallelForRunner]
)

func defaultDoTask(ctx context.Context, fn TaskFunc, idx int) error {
	return fn(ctx, idx)
}

// SetTaskRunner replaces the process-wide hook used to execute individual
// tasks. It is process-wide configuration, installed before any work is
// submitted: there is no synchronization with in-flight calls, and readers
// snapshot whichever runner is current at the moment they start a task.
// fn must not be nil.
func SetTaskRunner(fn TaskRunner) {
	if fn == nil {
		panic(`parfor: SetTaskRunner: fn must not be nil`)
	}
	customDoTask.Store(&fn)
}

// SetParallelForRunner replaces the process-wide hook used to implement
// SubmitParallelFor itself. Like SetTaskRunner, it is process-wide
// configuration with no synchronization against in-flight calls. fn must
// not be nil.
func SetParallelForRunner(fn ParallelForRunner) {
	if fn == nil {
		panic(`parfor: SetParallelForRunner: fn must not be nil`)
	}
	customDoParFor.Store(&fn)
}

func loadTaskRunner() TaskRunner {
	if p := customDoTask.Load(); p != nil {
		return *p
	}
	return defaultDoTask
}

func loadParallelForRunner() ParallelForRunner {
	if p := customDoParFor.Load(); p != nil {
		return *p
	}
	return defaultParallelForRunner
}

// defaultParallelForRunner adapts (*Pool).defaultParallelFor to the
// ParallelForRunner signature (ctx first, matching TaskRunner's convention,
// rather than the receiver-first order of a method expression).
func defaultParallelForRunner(ctx context.Context, p *Pool, min, size int, fn TaskFunc) error {
	return p.defaultParallelFor(ctx, min, size, fn)
}
