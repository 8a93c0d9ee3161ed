// Package workerpool bounds the goroutines running async event listeners.
//
// Without a bound, a burst of placed orders would spawn one goroutine per
// listener invocation. A Pool caps concurrency and gives the dispatcher a
// non-blocking Submit so it can fall back or shed load when saturated.
package workerpool

import (
	"errors"
	"sync"

	"github.com/shashiranjanraj/aushadhi/pkg/logger"
)

// ErrPoolFull is returned by Submit when every worker is busy and the
// backlog is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool runs submitted funcs on a fixed set of worker goroutines.
type Pool struct {
	backlog chan func()
	workers sync.WaitGroup
	once    sync.Once
	done    chan struct{}
}

// New starts a Pool with size workers. The backlog holds twice the worker
// count so short bursts queue instead of failing.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		backlog: make(chan func(), size*2),
		done:    make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		p.workers.Add(1)
		go p.run()
	}
	return p
}

// Submit enqueues task without blocking. It returns ErrPoolFull when the
// backlog is at capacity and ErrPoolClosed after Shutdown.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}
	select {
	case p.backlog <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until the backlog has room or the pool closes.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	case p.backlog <- task:
		return nil
	}
}

// Shutdown stops intake and waits for in-flight tasks. Safe to call twice.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.done)
		close(p.backlog)
		p.workers.Wait()
	})
}

func (p *Pool) run() {
	defer p.workers.Done()
	for task := range p.backlog {
		p.invoke(task)
	}
}

// invoke recovers panics so one bad listener cannot kill a worker.
func (p *Pool) invoke(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("worker task panicked", "panic", r)
		}
	}()
	task()
}
