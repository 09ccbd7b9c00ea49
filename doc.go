// Package parfor implements a parallel-for task scheduler: a fixed-size
// worker pool coordinated against a LIFO stack of jobs, with cooperative
// participation by the submitting goroutine and support for nested
// parallelism (a task may itself submit a job, and workers otherwise idle
// will help drain it).
//
// The scheduler is a process-wide singleton by default, lazily initialized
// on the first call to SubmitParallelFor, matching the behavior of the
// runtime it was translated from: thread pools are a system resource, and
// recreating one per call would defeat the purpose. Use Shutdown to tear it
// down; a subsequent SubmitParallelFor re-initializes it.
//
// See also [Pool], for constructing an isolated scheduler instance, e.g. for
// tests that would otherwise contend over the process-wide default.
package parfor
