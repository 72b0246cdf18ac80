// Package idle detects kiosk-level inactivity and wakes the machine back
// up on the first sign of a person. It only ever speaks to the state
// machine through events; the transition table decides what they mean.
package idle

import (
	"log/slog"
	"sync"
	"time"

	"github.com/agrovision/kiosk-go/internal/logging"
	"github.com/agrovision/kiosk-go/internal/state"
)

// DefaultTimeout is the inactivity window before the kiosk goes idle.
const DefaultTimeout = 90 * time.Second

// Timer tracks when the kiosk last saw activity. Safe for concurrent use.
type Timer struct {
	mu       sync.Mutex
	timeout  time.Duration
	lastSeen time.Time
}

// NewTimer builds a timer; a non-positive timeout falls back to
// DefaultTimeout.
func NewTimer(timeout time.Duration) *Timer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Timer{timeout: timeout, lastSeen: time.Now()}
}

// Reset records activity now.
func (t *Timer) Reset() {
	t.mu.Lock()
	t.lastSeen = time.Now()
	t.mu.Unlock()
}

// IsIdle reports whether the inactivity window has elapsed.
func (t *Timer) IsIdle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.lastSeen) >= t.timeout
}

// Controller connects the idle timer to the state machine.
type Controller struct {
	timer   *Timer
	machine *state.Machine
	log     *slog.Logger
}

// NewController builds an idle controller over the machine.
func NewController(timeout time.Duration, machine *state.Machine) *Controller {
	return &Controller{
		timer:   NewTimer(timeout),
		machine: machine,
		log:     logging.ForService("idle"),
	}
}

// OnActivity resets the inactivity window and wakes the kiosk when it was
// idle.
func (c *Controller) OnActivity() {
	c.timer.Reset()
	if c.machine.Current() == state.Idle {
		c.log.Info("activity while idle, waking")
		c.machine.Transition(state.ActivityDetected)
	}
}

// Tick evaluates the inactivity window. Call it from the frame loop.
// Firing rearms the timer, so a state that ignores the event is retried
// after a full window instead of on every tick.
func (c *Controller) Tick() {
	if !c.timer.IsIdle() {
		return
	}
	if c.machine.Current() == state.Idle {
		return
	}
	c.timer.Reset()
	c.log.Info("inactivity window elapsed")
	c.machine.Transition(state.IdleTimeout)
}
