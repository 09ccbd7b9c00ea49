package parfor

// workerLoop is run by both hirelings (owned == nil) and the owner of a job
// (owned != nil, the goroutine that called SubmitParallelFor). It acquires
// the pool's mutex and repeats until its termination predicate holds.
//
// Grounded on worker_thread in thread_pool_common.h.
func (p *Pool) workerLoop(owned *job) {
	p.mu.Lock()

	for p.workerShouldContinueLocked(owned) {
		if p.jobs == nil {
			switch {
			case owned != nil:
				// An owner with no pending jobs anywhere is waiting on its
				// own job to finish: the A-team CV is reserved for
				// hirelings awaiting new work, not for the owner's own
				// completion signal.
				p.wakeupOwners.Wait()

			case p.aTeamSize <= p.targetATeamSize:
				// A hireling with room on the A team waits for new jobs.
				p.wakeupATeam.Wait()

			default:
				// The A team is oversized for the current target: migrate
				// to the B team until more parallelism is needed.
				//
				// The decrement and increment happen inside the same
				// locked wait region as the Wait call: a spurious wakeup
				// will flip a hireling from B back to A and immediately
				// back to B, without having done any work. This is benign.
				p.aTeamSize--
				p.recordTransitionLocked(transitionToBTeam)
				p.wakeupBTeam.Wait()
				p.aTeamSize++
				p.recordTransitionLocked(transitionToATeam)
			}
			continue
		}

		// Claim the next task from the top job on the stack.
		j := p.jobs
		idx := j.next
		j.next++
		if j.next == j.max {
			// No more tasks to hand out, though workers may still be
			// executing ones already claimed.
			p.jobs = j.nextJob
		}
		j.activeWorkers++

		p.mu.Unlock()
		err := loadTaskRunner()(j.ctx, j.fn, idx)
		p.mu.Lock()

		if err != nil {
			// Last-writer-wins: see (*Pool).SubmitParallelFor.
			j.exitStatus = err
			logTaskFailed(idx, err)
		}
		j.activeWorkers--

		if !j.running() && j != owned {
			// Wake the submitter of this job, which may not be us.
			p.wakeupOwners.Broadcast()
		}
	}

	p.mu.Unlock()
}

// workerShouldContinueLocked implements the loop termination predicate: an
// owner stays until its own job is done; a hireling stays until the pool
// shuts down. p.mu must be held.
func (p *Pool) workerShouldContinueLocked(owned *job) bool {
	if owned != nil {
		return owned.running()
	}
	return !p.shutdown
}

func (p *Pool) recordTransitionLocked(k transitionKind) {
	t := Transition{Kind: k, ATeamSize: p.aTeamSize}
	p.transitions.push(t)
	currentLogger().Debug().
		Str(`direction`, k.String()).
		Int(`a_team_size`, p.aTeamSize).
		Int(`target_a_team_size`, p.targetATeamSize).
		Log(`parfor: worker team transition`)
}

// RecentTransitions returns a snapshot of this Pool's recent A/B-team
// transitions, oldest first, bounded to a small fixed capacity. It exists
// to make the "small job sleeping" behavior observable from outside the
// mutex, e.g. from a test.
func (p *Pool) RecentTransitions() []Transition {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.transitions == nil {
		return nil
	}
	return p.transitions.snapshot()
}
