// Package taskqueue implements the bounded single-worker task lanes that
// keep the vision pipeline real-time. Each lane owns one worker goroutine
// and a small admission queue; submission never blocks the caller and
// overload is resolved by a per-lane drop policy instead of backpressure.
package taskqueue

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agrovision/kiosk-go/internal/errors"
	"github.com/agrovision/kiosk-go/internal/logging"
	"github.com/agrovision/kiosk-go/internal/observability/metrics"
)

// Policy decides what happens when a task is submitted to a full lane.
type Policy int

const (
	// DropOldest discards the queued-but-not-started task and admits the
	// new one. The freshest input always wins; used by the real-time
	// detection and recognition lanes.
	DropOldest Policy = iota
	// DropNewest discards the incoming task and keeps the existing
	// backlog. Used by the background I/O lane, which favors eventual
	// persistence over freshness.
	DropNewest
)

// String returns the policy name for logs.
func (p Policy) String() string {
	switch p {
	case DropOldest:
		return "drop-oldest"
	case DropNewest:
		return "drop-newest"
	default:
		return "unknown"
	}
}

// Task is one unit of work for a lane.
type Task struct {
	Name string // short label for logs
	Run  func() // the work; never nil for admitted tasks
}

// Stats is a point-in-time snapshot of lane counters.
type Stats struct {
	Submitted uint64
	Executed  uint64
	Dropped   uint64
	Panics    uint64
}

// Lane is one bounded single-worker task queue.
type Lane struct {
	name    string
	policy  Policy
	tasks   chan Task
	quit    chan struct{}
	wg      sync.WaitGroup
	stopped atomic.Bool

	submitted atomic.Uint64
	executed  atomic.Uint64
	dropped   atomic.Uint64
	panics    atomic.Uint64

	metrics *metrics.TaskQueueMetrics
	log     *slog.Logger
}

// NewLane creates and starts a lane. Capacity below 1 is coerced to 1.
// The metrics argument may be nil.
func NewLane(name string, capacity int, policy Policy, m *metrics.TaskQueueMetrics) *Lane {
	if capacity < 1 {
		capacity = 1
	}
	l := &Lane{
		name:    name,
		policy:  policy,
		tasks:   make(chan Task, capacity),
		quit:    make(chan struct{}),
		metrics: m,
		log:     logging.ForService("taskqueue").With("lane", name),
	}
	l.wg.Add(1)
	go l.worker()
	l.log.Info("task lane started", "capacity", capacity, "policy", policy.String())
	return l
}

// Submit offers a task to the lane without ever blocking. Depending on the
// lane policy the task is scheduled, replaces the queued-but-not-running
// task, or is dropped. The returned bool reports whether this task was
// admitted.
func (l *Lane) Submit(task Task) bool {
	if task.Run == nil {
		return false
	}
	if l.stopped.Load() {
		return false
	}

	l.submitted.Add(1)
	if l.metrics != nil {
		l.metrics.Submitted.WithLabelValues(l.name).Inc()
	}

	select {
	case l.tasks <- task:
		return true
	default:
	}

	switch l.policy {
	case DropOldest:
		// Displace the stale queued task. The loop guards against racing
		// with the worker draining the queue between our attempts.
		for {
			select {
			case stale := <-l.tasks:
				l.recordDrop(stale.Name, "stale task displaced by newer submission")
			default:
			}
			select {
			case l.tasks <- task:
				return true
			default:
			}
		}
	case DropNewest:
		l.recordDrop(task.Name, "queue full, new task discarded")
		return false
	default:
		l.recordDrop(task.Name, "unknown admission policy")
		return false
	}
}

func (l *Lane) recordDrop(taskName, reason string) {
	l.dropped.Add(1)
	if l.metrics != nil {
		l.metrics.Dropped.WithLabelValues(l.name).Inc()
	}
	l.log.Debug("task dropped", "task", taskName, "reason", reason)
}

// worker executes admitted tasks one at a time.
func (l *Lane) worker() {
	defer l.wg.Done()
	for {
		select {
		case <-l.quit:
			return
		case task := <-l.tasks:
			l.execute(task)
		}
	}
}

// execute runs one task with panic isolation. A panicking task is logged
// and counted; the worker keeps serving future submissions.
func (l *Lane) execute(task Task) {
	defer func() {
		if r := recover(); r != nil {
			l.panics.Add(1)
			if l.metrics != nil {
				l.metrics.Panics.WithLabelValues(l.name).Inc()
			}
			l.log.Error("task panicked", "task", task.Name, "panic", r)
		}
	}()

	task.Run()
	l.executed.Add(1)
	if l.metrics != nil {
		l.metrics.Executed.WithLabelValues(l.name).Inc()
	}
}

// Stats returns a snapshot of the lane counters.
func (l *Lane) Stats() Stats {
	return Stats{
		Submitted: l.submitted.Load(),
		Executed:  l.executed.Load(),
		Dropped:   l.dropped.Load(),
		Panics:    l.panics.Load(),
	}
}

// Name returns the lane name.
func (l *Lane) Name() string {
	return l.name
}

// Shutdown stops the lane, waiting up to timeout for the in-flight task.
// Queued-but-not-started tasks are discarded. Safe to call more than once.
func (l *Lane) Shutdown(timeout time.Duration) error {
	if l.stopped.Swap(true) {
		return nil
	}
	close(l.quit)

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		l.log.Info("task lane stopped", "stats", l.Stats())
		return nil
	case <-time.After(timeout):
		l.log.Warn("task lane shutdown timeout exceeded")
		return errors.Newf("lane %s: shutdown timeout exceeded", l.name).
			Component("taskqueue").
			Category(errors.CategoryTimeout).
			Build()
	}
}
