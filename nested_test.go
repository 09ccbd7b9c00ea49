package parfor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// A task submits its own nested parallel-for; the outer call only returns
// once the inner job and all its tasks have returned, and inner tasks may
// run on otherwise-idle workers.
func TestPool_SubmitParallelFor_nested(t *testing.T) {
	defer checkNumGoroutines(time.Second * 3)(t)

	var p Pool
	defer p.Shutdown()

	var grid [64]int32

	err := p.SubmitParallelFor(context.Background(), 0, 8, func(ctx context.Context, outer int) error {
		return p.SubmitParallelFor(ctx, outer*8, 8, func(ctx context.Context, idx int) error {
			atomic.AddInt32(&grid[idx], 1)
			return nil
		})
	})

	require.NoError(t, err)
	for idx, n := range grid {
		require.Equal(t, int32(1), n, `cell %d incremented %d times, want exactly 1`, idx, n)
	}
}

// A task's nested submission propagates its own failure outward, without
// corrupting sibling outer tasks.
func TestPool_SubmitParallelFor_nestedFailurePropagates(t *testing.T) {
	defer checkNumGoroutines(time.Second * 3)(t)

	var p Pool
	defer p.Shutdown()

	innerErr := errNestedTaskFailed

	err := p.SubmitParallelFor(context.Background(), 0, 4, func(ctx context.Context, outer int) error {
		return p.SubmitParallelFor(ctx, 0, 4, func(ctx context.Context, idx int) error {
			if outer == 2 && idx == 1 {
				return innerErr
			}
			return nil
		})
	})

	require.ErrorIs(t, err, innerErr)
}

// Nested submission against the process-wide default pool, from within a
// task submitted to an isolated Pool, exercises that jobs/owners nest
// correctly even across different Pool instances racing for CPU.
func TestPool_SubmitParallelFor_nestedAcrossPools(t *testing.T) {
	defer checkNumGoroutines(time.Second * 3)(t)

	var outerPool Pool
	defer outerPool.Shutdown()
	defer Shutdown()

	var innerTotal int64
	err := outerPool.SubmitParallelFor(context.Background(), 0, 4, func(ctx context.Context, _ int) error {
		return SubmitParallelFor(ctx, 0, 4, func(ctx context.Context, _ int) error {
			atomic.AddInt64(&innerTotal, 1)
			return nil
		})
	})

	require.NoError(t, err)
	require.EqualValues(t, 16, innerTotal)
}
