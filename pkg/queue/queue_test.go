package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/aushadhi/pkg/queue"
)

var handled atomic.Int32

type mailJob struct {
	OrderNumber string
}

func (j *mailJob) Handle() error {
	handled.Add(1)
	return nil
}

type brokenJob struct{}

func (j *brokenJob) Handle() error {
	return errors.New("smtp unreachable")
}

func init() {
	queue.Register("*queue_test.mailJob", func() queue.Job { return &mailJob{} })
	queue.Register("*queue_test.brokenJob", func() queue.Job { return &brokenJob{} })
	queue.StartWorkers(context.Background(), 2)
}

func TestDispatchRunsJob(t *testing.T) {
	before := handled.Load()
	require.NoError(t, queue.Dispatch(&mailJob{OrderNumber: "ORD-TEST00001"}))

	deadline := time.Now().Add(2 * time.Second)
	for handled.Load() == before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Greater(t, handled.Load(), before)
}

func TestExhaustedJobIsRecorded(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	require.NoError(t, queue.Dispatch(&brokenJob{}))

	deadline := time.Now().Add(3 * time.Second)
	for len(queue.FailedJobs()) == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	require.NotEmpty(t, queue.FailedJobs())
}

func TestConcurrentDispatch(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = queue.Dispatch(&mailJob{OrderNumber: "ORD-CONCURRENT"})
		}()
	}
	wg.Wait()
}
