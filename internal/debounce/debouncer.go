// Package debounce coalesces bursts of calls into a single deferred call.
package debounce

import (
	"sync"
	"time"
)

// DefaultDuration is the default debounce window.
const DefaultDuration = 250 * time.Millisecond

// Debouncer runs only the last callback of a burst, after the window elapses.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	seq      uint64
}

// New creates a Debouncer. A non-positive duration uses DefaultDuration.
func New(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Debouncer{duration: duration}
}

// Trigger schedules callback after the debounce window, replacing any
// callback scheduled earlier that has not yet run.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// A timer that fired while being replaced must not run its stale callback.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		callback()
	})
}

// Pending reports whether a callback is scheduled and has not started.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the debounce window.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
