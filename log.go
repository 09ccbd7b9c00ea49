package parfor

import (
	"os"
	"sync/atomic"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// defaultLogger holds the structured logger used for pool lifecycle and
// instrumentation events: lazy initialization, job push, A/B-team
// transitions, task failures, and shutdown. It defaults to a disabled logger (matching
// logiface's LevelDisabled convention), so the scheduler is silent unless a
// caller opts in via SetLogger.
//
// github.com/joeycumines/stumpy is the default backend, mirroring the rest
// of the pack's logiface-stumpy/logiface-zerolog wiring.
var defaultLogger atomic.Pointer[logiface.Logger[*stumpy.Event]]

func init() {
	l := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr)),
		stumpy.L.WithLevel(logiface.LevelDisabled),
	)
	defaultLogger.Store(l)
}

// SetLogger installs the logger used for pool instrumentation events. A nil
// logger restores the default (disabled) behavior. As with SetTaskRunner and
// SetParallelForRunner, this is process-wide configuration with no
// synchronization against in-flight calls: install it before submitting
// work.
func SetLogger(l *logiface.Logger[*stumpy.Event]) {
	if l == nil {
		l = stumpy.L.New(stumpy.L.WithLevel(logiface.LevelDisabled))
	}
	defaultLogger.Store(l)
}

func currentLogger() *logiface.Logger[*stumpy.Event] {
	return defaultLogger.Load()
}

func logPoolInitialized(p *Pool) {
	currentLogger().Info().
		Int(`num_threads`, p.numThreads).
		Log(`parfor: pool initialized`)
}

func logPoolShutdown(p *Pool) {
	currentLogger().Info().
		Log(`parfor: pool shutdown complete`)
}

func logJobPushed(p *Pool, j *job, size int) {
	currentLogger().Debug().
		Int(`min`, j.next).
		Int(`size`, size).
		Int(`target_a_team_size`, p.targetATeamSize).
		Log(`parfor: job pushed`)
}

func logTaskFailed(idx int, err error) {
	currentLogger().Err().
		Int(`idx`, idx).
		Err(err).
		Log(`parfor: task failed`)
}
