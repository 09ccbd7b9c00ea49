package parfor

import "context"

// TaskFunc is the unit of work run for each index in a parallel-for call.
//
// A non-nil error marks the task as failed; it does not cancel or skip
// sibling tasks, within the same job or any other. ctx is not honored for
// cancellation by the scheduler itself (there are no timeouts and no
// cancellation of in-flight tasks) - it exists so that tasks can thread
// logging/tracing baggage through, and so that tasks may honor cancellation
// of work they themselves dispatch.
type TaskFunc func(ctx context.Context, idx int) error

// job is a transient descriptor for one call to SubmitParallelFor. It is
// created on the submitter's stack frame, pushed onto the pool's job stack
// under the pool's mutex, and destroyed when the submitter returns, which it
// may only do once running() is false.
//
// All fields except fn and ctx are mutated only while the pool's mutex is
// held.
type job struct {
	fn  TaskFunc
	ctx context.Context

	next, max int // next unclaimed index; one past the last index

	activeWorkers int
	exitStatus    error

	nextJob *job // link to the job beneath this one on the stack
}

// running reports whether this job has outstanding work: either unclaimed
// indices, or tasks still executing.
func (j *job) running() bool {
	return j.next < j.max || j.activeWorkers > 0
}
