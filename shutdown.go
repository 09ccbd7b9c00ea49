package parfor

// Shutdown tells every hireling goroutine to exit, joins them, and marks the
// pool uninitialized. A subsequent call to SubmitParallelFor reinitializes
// it with a fresh cohort.
//
// Shutdown is a no-op if the pool was never initialized.
//
// The caller is responsible for ensuring no job is in flight; Shutdown
// panics if it finds one, rather than leaving the pool in a state where a
// job's storage could be accessed by a hireling after the owner returns.
// This mirrors the debug-build assertion in thread_pool_common.h.
func (p *Pool) Shutdown() error {
	p.mu.Lock()
	if !p.initialized {
		p.mu.Unlock()
		return nil
	}
	if p.jobs != nil {
		p.mu.Unlock()
		panic(`parfor: Shutdown: called with a job in flight`)
	}

	p.shutdown = true
	p.wakeupOwners.Broadcast()
	p.wakeupATeam.Broadcast()
	p.wakeupBTeam.Broadcast()
	p.mu.Unlock()

	p.hirelings.Wait()

	p.mu.Lock()
	p.initialized = false
	p.mu.Unlock()

	logPoolShutdown(p)

	return nil
}
