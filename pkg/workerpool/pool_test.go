package workerpool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/aushadhi/pkg/workerpool"
)

func TestPoolRunsEveryTask(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 100
	var ran atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		require.NoError(t, pool.SubmitWait(func() {
			defer wg.Done()
			ran.Add(1)
		}))
	}
	wg.Wait()

	require.EqualValues(t, n, ran.Load())
}

func TestPoolShedsWhenSaturated(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	blocker := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, pool.SubmitWait(func() {
		close(started)
		<-blocker
	}))
	<-started

	// The backlog holds 2x workers, so two more fit.
	require.NoError(t, pool.Submit(func() {}))
	require.NoError(t, pool.Submit(func() {}))

	err := pool.Submit(func() {})
	require.ErrorIs(t, err, workerpool.ErrPoolFull)

	close(blocker)
}

func TestPoolRejectsAfterShutdown(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()

	err := pool.Submit(func() {})
	require.ErrorIs(t, err, workerpool.ErrPoolClosed)
}

func TestPoolSurvivesPanickingTask(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, pool.SubmitWait(func() {
		defer wg.Done()
		panic("listener blew up")
	}))
	wg.Wait()

	ran := make(chan struct{})
	require.NoError(t, pool.SubmitWait(func() { close(ran) }))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("pool stopped running tasks after a panic")
	}
}

func TestPoolShutdownWaitsForInflight(t *testing.T) {
	pool := workerpool.New(10)

	var ran atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		require.NoError(t, pool.SubmitWait(func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
			ran.Add(1)
		}))
	}
	wg.Wait()
	pool.Shutdown()

	require.EqualValues(t, 50, ran.Load())
}
