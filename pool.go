package parfor

import (
	"context"
	"sync"
)

// Pool is a work queue: a mutex-guarded LIFO stack of jobs, a fixed cohort of
// worker goroutines partitioned into an A team (eligible to pick up tasks)
// and a B team (parked, surplus for the current job), and the three
// condition variables used to wake them for distinct reasons.
//
// The zero value is a valid, uninitialized Pool: it lazily spawns its worker
// goroutines on the first call to SubmitParallelFor. Use Shutdown to tear it
// down; a subsequent SubmitParallelFor reinitializes it.
//
// Pool is safe for concurrent use. Most callers should use the package-level
// SubmitParallelFor and Shutdown functions, which operate on a shared
// process-wide default Pool; construct a Pool directly only when isolation
// from that default is required (e.g. in tests).
type Pool struct {
	mu sync.Mutex

	// protected by mu
	jobs                       *job
	wakeupOwners               *sync.Cond
	wakeupATeam                *sync.Cond
	wakeupBTeam                *sync.Cond
	aTeamSize, targetATeamSize int
	numThreads                 int
	initialized                bool
	shutdown                   bool
	transitions                *transitionRing

	hirelings sync.WaitGroup
}

// defaultPool is the process-wide singleton operated on by the package-level
// SubmitParallelFor, Shutdown and RecentTransitions.
var defaultPool Pool

// SubmitParallelFor runs fn(ctx, idx) for each idx in [min, min+size), using
// the process-wide default Pool. See (*Pool).SubmitParallelFor.
func SubmitParallelFor(ctx context.Context, min, size int, fn TaskFunc) error {
	return defaultPool.SubmitParallelFor(ctx, min, size, fn)
}

// Shutdown tears down the process-wide default Pool. See (*Pool).Shutdown.
func Shutdown() error {
	return defaultPool.Shutdown()
}

// RecentTransitions returns a snapshot of the process-wide default Pool's
// recent A/B-team transitions. See (*Pool).RecentTransitions.
func RecentTransitions() []Transition {
	return defaultPool.RecentTransitions()
}

// SubmitParallelFor runs fn(ctx, idx) for each idx in [min, min+size), once
// each, across up to the pool's resolved thread count (including the
// calling goroutine, which cooperatively participates as the job's owner).
//
// It returns nil if every task returned nil, otherwise the last non-nil
// error observed for this job: racing workers each overwrite the job's
// exit status on failure, so the result is whichever failure was recorded
// last, not necessarily the first one to occur.
//
// size must not be negative, and fn must not be nil; SubmitParallelFor
// panics otherwise. A nil ctx is treated as context.Background().
func (p *Pool) SubmitParallelFor(ctx context.Context, min, size int, fn TaskFunc) error {
	if fn == nil {
		panic(`parfor: SubmitParallelFor: fn must not be nil`)
	}
	if size < 0 {
		panic(`parfor: SubmitParallelFor: size must not be negative`)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return loadParallelForRunner()(ctx, p, min, size, fn)
}

// defaultParallelFor implements the default ParallelForRunner: lazy pool
// init, job construction and A-team sizing, pushing the job, waking workers,
// and cooperative participation by the calling goroutine as the job's owner.
//
// Grounded on default_do_par_for in thread_pool_common.h.
func (p *Pool) defaultParallelFor(ctx context.Context, min, size int, fn TaskFunc) error {
	p.mu.Lock()
	p.ensureInitializedLocked()

	if size == 0 {
		// An empty range has nothing to claim and next == max already: it
		// must never reach the job stack, since nothing would ever pop it
		// (see workerLoop/workerShouldContinueLocked).
		p.mu.Unlock()
		return nil
	}

	j := &job{
		fn:   fn,
		ctx:  ctx,
		next: min,
		max:  min + size,
	}

	if p.jobs == nil && size < p.numThreads {
		// No nested parallelism happening, and fewer tasks than threads:
		// let surplus A-team workers migrate to the B team until a larger
		// job arrives.
		p.targetATeamSize = size
	} else {
		p.targetATeamSize = p.numThreads
	}

	wakeBTeam := size > p.aTeamSize

	j.nextJob = p.jobs
	p.jobs = j

	logJobPushed(p, j, size)

	p.mu.Unlock()

	p.wakeupATeam.Broadcast()
	if wakeBTeam {
		p.wakeupBTeam.Broadcast()
	}

	// Cooperatively participate: the owner runs the same loop as a
	// hireling, but only until its own job finishes.
	p.workerLoop(j)

	// No lock needed: running() is false, so every writer of j.exitStatus
	// has already retired.
	return j.exitStatus
}

// ensureInitializedLocked lazily initializes the pool on first use, or after
// Shutdown. p.mu must already be held.
func (p *Pool) ensureInitializedLocked() {
	if p.initialized {
		return
	}

	p.shutdown = false
	p.wakeupOwners = sync.NewCond(&p.mu)
	p.wakeupATeam = sync.NewCond(&p.mu)
	p.wakeupBTeam = sync.NewCond(&p.mu)
	p.jobs = nil
	p.numThreads = resolveNumThreads()
	p.transitions = newTransitionRing(256)
	p.aTeamSize = p.numThreads
	p.targetATeamSize = p.numThreads
	p.hirelings = sync.WaitGroup{}

	for i := 0; i < p.numThreads-1; i++ {
		p.hirelings.Add(1)
		go func() {
			defer p.hirelings.Done()
			p.workerLoop(nil)
		}()
	}

	p.initialized = true

	logPoolInitialized(p)
}
