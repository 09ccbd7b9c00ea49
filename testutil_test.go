package parfor

import (
	"errors"
	"runtime"
	"testing"
	"time"
)

var errNestedTaskFailed = errors.New(`nested task failed`)

// checkNumGoroutines asserts, on defer, that the number of live goroutines
// returns to (at most) its value at call time, within the given timeout.
// Modeled on the same-named helper referenced from microbatch's test suite,
// used here to confirm Shutdown leaves no hireling goroutines behind.
func checkNumGoroutines(timeout time.Duration) func(t *testing.T) {
	before := runtime.NumGoroutine()
	deadline := time.Now().Add(timeout)
	return func(t *testing.T) {
		t.Helper()
		for {
			after := runtime.NumGoroutine()
			if after <= before {
				return
			}
			if time.Now().After(deadline) {
				t.Fatalf(`leaked goroutines: before=%d after=%d`, before, after)
			}
			time.Sleep(time.Millisecond)
		}
	}
}
