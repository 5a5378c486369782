package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsAll(t *testing.T) {
	pool := Start(context.Background(), 3)

	var count atomic.Int64
	for range 50 {
		pool.Do(func(context.Context) error {
			count.Add(1)
			return nil
		})
	}

	assert.NoError(t, pool.Wait())
	assert.Equal(t, int64(50), count.Load())
}

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := Start(context.Background(), 2)

	var running, peak atomic.Int64
	for range 20 {
		pool.Do(func(context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			running.Add(-1)
			return nil
		})
	}

	assert.NoError(t, pool.Wait())
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestPoolReportsFirstError(t *testing.T) {
	pool := Start(context.Background(), 1)
	boom := errors.New("boom")

	pool.Do(func(context.Context) error { return boom })
	var ran atomic.Bool
	pool.Do(func(context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.ErrorIs(t, pool.Wait(), boom)
	assert.False(t, ran.Load(), "jobs queued after a failure are skipped")
}

func TestPoolDefaultWorkers(t *testing.T) {
	pool := Start(context.Background(), 0)
	pool.Do(func(context.Context) error { return nil })
	assert.NoError(t, pool.Wait())
}
