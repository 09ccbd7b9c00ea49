package parfor_test

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/joeycumines/go-parfor"
)

func ExampleSubmitParallelFor() {
	defer parfor.Shutdown()

	var total int64
	err := parfor.SubmitParallelFor(context.Background(), 0, 100, func(ctx context.Context, idx int) error {
		atomic.AddInt64(&total, int64(idx))
		return nil
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(total)
	//output:
	//4950
}

func ExamplePool_SubmitParallelFor_nested() {
	var p parfor.Pool
	defer p.Shutdown()

	var grid [9]int32
	err := p.SubmitParallelFor(context.Background(), 0, 3, func(ctx context.Context, outer int) error {
		return p.SubmitParallelFor(ctx, outer*3, 3, func(ctx context.Context, idx int) error {
			atomic.AddInt32(&grid[idx], 1)
			return nil
		})
	})
	if err != nil {
		panic(err)
	}

	var sum int32
	for _, n := range grid {
		sum += n
	}
	fmt.Println(sum)
	//output:
	//9
}
