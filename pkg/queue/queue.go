// Package queue runs background jobs, like the confirmation email sent
// after checkout. Jobs are serialized with their concrete type name so
// workers in another process can rebuild them.
//
//	queue.Register(fmt.Sprintf("%T", &OrderConfirmationJob{}), func() queue.Job {
//	    return &OrderConfirmationJob{}
//	})
//
//	queue.Dispatch(&OrderConfirmationJob{OrderNumber: "ORD-1"})
//	queue.DispatchAfter(job, 30*time.Second)
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/aushadhi/pkg/logger"
	"github.com/shashiranjanraj/aushadhi/pkg/metrics"
)

// Job is anything a worker can execute.
type Job interface {
	Handle() error
}

// FailedJob records a job whose retries ran out.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

// Driver stores serialized jobs. MemoryDriver for development, Redis in
// production.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// Manager ties a driver to the job registry and retry policy.
type Manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job
	failed   []FailedJob
	maxRetry int
}

var defaultManager = &Manager{
	registry: map[string]func() Job{},
	maxRetry: 3,
	driver:   NewMemoryDriver(),
}

// SetDriver swaps the backing driver, normally to Redis at boot.
func SetDriver(d Driver) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.driver = d
}

// SetMaxRetry sets the attempt budget per job.
func SetMaxRetry(n int) { defaultManager.maxRetry = n }

// Register maps a serialized type name back to a constructor. Every job
// type registers once at boot, usually from an init function.
func Register(name string, factory func() Job) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.registry[name] = factory
}

// envelope wraps a job payload with the type name workers use to
// reconstruct it.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatch pushes job for immediate processing.
func Dispatch(job Job) error {
	return defaultManager.push(job)
}

// DispatchAfter pushes job once delay has passed. The delay rides a
// goroutine, so pending delays are lost on restart.
func DispatchAfter(job Job, delay time.Duration) {
	go func() {
		time.Sleep(delay)
		if err := Dispatch(job); err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
		}
	}()
}

func (m *Manager) push(job Job) error {
	typeName := fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal job %s: %w", typeName, err)
	}
	env, err := json.Marshal(envelope{Type: typeName, Payload: payload})
	if err != nil {
		return fmt.Errorf("queue: marshal envelope: %w", err)
	}

	m.mu.RLock()
	d := m.driver
	m.mu.RUnlock()
	return d.Push(env)
}

// StartWorkers runs n workers until ctx is cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go defaultManager.work(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func (m *Manager) work(ctx context.Context) {
	for ctx.Err() == nil {
		m.mu.RLock()
		d := m.driver
		m.mu.RUnlock()

		raw, err := d.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw == nil {
			continue
		}
		m.process(raw)
	}
}

func (m *Manager) process(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()
	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		return
	}
	m.execute(job, env.Type)
}

// execute retries with linear backoff until the job succeeds or the
// attempt budget runs out, then records the failure.
func (m *Manager) execute(job Job, typeName string) {
	var lastErr error
	for attempt := 1; attempt <= m.maxRetry; attempt++ {
		if err := job.Handle(); err != nil {
			lastErr = err
			logger.Warn("queue: job failed, retrying",
				"type", typeName, "attempt", attempt, "error", err)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		logger.Info("queue: job processed", "type", typeName)
		metrics.QueueJobsProcessed.WithLabelValues("success").Inc()
		return
	}

	m.recordFailure(job, typeName, lastErr, m.maxRetry)
	metrics.QueueJobsProcessed.WithLabelValues("failed").Inc()
	logger.Error("queue: job exhausted retries", "type", typeName, "error", lastErr)
}

// FailedJobs snapshots the in-memory failure list.
func FailedJobs() []FailedJob {
	defaultManager.mu.RLock()
	defer defaultManager.mu.RUnlock()
	out := make([]FailedJob, len(defaultManager.failed))
	copy(out, defaultManager.failed)
	return out
}
