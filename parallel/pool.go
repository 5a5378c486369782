// Package parallel runs independent jobs on a bounded number of goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type (
	WorkerFunc func(func(context.Context) error)
	WaitFunc   func() error
)

type Pool struct {
	Do   WorkerFunc
	Wait WaitFunc
}

// Start returns a pool running at most numWorkers jobs at once. A value below
// one uses GOMAXPROCS. The context handed to jobs is cancelled once any job
// fails or ctx is done.
func Start(ctx context.Context, numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(numWorkers)

	pool := &Pool{}
	pool.Do = func(f func(context.Context) error) {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return f(gctx)
		})
	}
	pool.Wait = group.Wait

	return pool
}
