// Package schedule runs recurring maintenance tasks, like the catalog
// cache warmup and the failed-job purge. Tasks register through a fluent
// builder and a single loop dispatches whichever are due.
//
//	schedule.Every(5).Minutes().Name("catalog-warmup").WithoutOverlapping().Run(warm)
//	schedule.Daily().Name("failed-jobs-purge").Run(purge)
//
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/aushadhi/pkg/logger"
)

// Task is any function the scheduler can run.
type Task func()

type entry struct {
	id        string
	interval  time.Duration
	task      Task
	before    Task
	after     Task
	noOverlap bool

	mu      sync.Mutex
	lastRun time.Time
	running bool
}

// Schedule configures one entry before Run registers it.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every begins a builder: Every(5).Minutes(), Every(1).Hours().
func Every(n int) *freqBuilder { return &freqBuilder{n: n} }

// EveryMinute runs the task once a minute.
func EveryMinute() *Schedule { return Every(1).Minutes() }

// Hourly runs the task once an hour.
func Hourly() *Schedule { return Every(1).Hours() }

// Daily runs the task once every 24 hours.
func Daily() *Schedule { return Every(24).Hours() }

// Weekly runs the task once every 7 days.
func Weekly() *Schedule { return Every(7).Days() }

type freqBuilder struct{ n int }

func (f *freqBuilder) Seconds() *Schedule { return sched(time.Duration(f.n) * time.Second) }
func (f *freqBuilder) Minutes() *Schedule { return sched(time.Duration(f.n) * time.Minute) }
func (f *freqBuilder) Hours() *Schedule   { return sched(time.Duration(f.n) * time.Hour) }
func (f *freqBuilder) Days() *Schedule    { return sched(time.Duration(f.n) * 24 * time.Hour) }

func sched(interval time.Duration) *Schedule {
	return &Schedule{e: &entry{interval: interval}}
}

// WithoutOverlapping skips a run while the previous one is still going.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Before runs fn ahead of each task invocation.
func (s *Schedule) Before(fn Task) *Schedule {
	s.e.before = fn
	return s
}

// After runs fn once the task finishes, panics included.
func (s *Schedule) After(fn Task) *Schedule {
	s.e.after = fn
	return s
}

// Name labels the entry in logs and the schedule:list output.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task. The first run happens on the next tick after
// Start, subsequent runs after each interval.
func (s *Schedule) Run(fn Task) {
	s.e.task = fn
	regMu.Lock()
	if s.e.id == "" {
		s.e.id = fmt.Sprintf("task-%d", len(entries)+1)
	}
	entries = append(entries, s.e)
	regMu.Unlock()
}

// Start launches the dispatch loop. It stops when ctx is cancelled.
func Start(ctx context.Context) {
	go loop(ctx)
	logger.Info("schedule: scheduler started")
}

func loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			for _, e := range snapshot() {
				if e.due(now) {
					e.fire()
				}
			}
		}
	}
}

func snapshot() []*entry {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]*entry, len(entries))
	copy(out, entries)
	return out
}

func (e *entry) due(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastRun.IsZero() || now.Sub(e.lastRun) >= e.interval
}

func (e *entry) fire() {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
			if e.after != nil {
				e.after()
			}
		}()

		if e.before != nil {
			e.before()
		}
		logger.Info("schedule: running task", "id", e.id)
		e.task()
	}()
}

// List describes the registered entries for the schedule:list command.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s  [every %s]", e.id, e.interval))
	}
	return out
}
