package parfor

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"go.uber.org/automaxprocs/maxprocs"
)

// MaxThreads is the hard ceiling on the resolved thread count, regardless of
// override, environment, or host CPU count.
const MaxThreads = 64

func init() {
	// Make GOMAXPROCS respect cgroup CPU quotas (containers). This does not
	// change runtime.NumCPU, which resolveNumThreads uses as its host CPU
	// count. Errors are swallowed deliberately: on a host without cgroup CPU limits (or
	// without /proc, e.g. non-Linux), this is a no-op, not a fault.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
}

var (
	numThreadsOverrideMu sync.Mutex
	numThreadsOverride   int // 0 means unset
)

// SetNumThreads installs a programmatic override for the resolved thread
// count, taking priority over HL_NUM_THREADS, HL_NUMTHREADS, and the host
// CPU count. It is sticky: once the pool has been initialized, further calls
// have no effect on the already-running pool: the override is sticky once
// set, but only takes effect on the next (re)initialization.
//
// n must be positive; SetNumThreads panics otherwise. The resolved value is
// still clamped to [1, MaxThreads].
func SetNumThreads(n int) {
	if n <= 0 {
		panic(`parfor: SetNumThreads: n must be positive`)
	}
	numThreadsOverrideMu.Lock()
	defer numThreadsOverrideMu.Unlock()
	numThreadsOverride = n
}

// resolveNumThreads implements the thread-count resolution order: a
// programmatic override, then HL_NUM_THREADS, then the legacy HL_NUMTHREADS,
// then the host CPU count, clamped to [1, MaxThreads].
func resolveNumThreads() int {
	n := 0

	numThreadsOverrideMu.Lock()
	n = numThreadsOverride
	numThreadsOverrideMu.Unlock()

	if n == 0 {
		if v, ok := os.LookupEnv(`HL_NUM_THREADS`); ok {
			n, _ = strconv.Atoi(v)
		}
	}
	if n == 0 {
		if v, ok := os.LookupEnv(`HL_NUMTHREADS`); ok {
			n, _ = strconv.Atoi(v)
		}
	}
	if n == 0 {
		n = runtime.NumCPU()
	}

	if n > MaxThreads {
		n = MaxThreads
	} else if n < 1 {
		n = 1
	}
	return n
}
