// Package tasklet is a poll-driven periodic task helper for the command
// loop: no goroutine, no timer, just "is it due yet" against a clock.
package tasklet

import "time"

// Clock supplies the current time; tests inject their own.
type Clock func() time.Time

// Tasklet fires on the first poll, then every interval, for a bounded
// or unbounded number of runs.
type Tasklet struct {
	interval  time.Duration
	runs      uint32
	clock     Clock
	next      time.Time
	armed     bool
	done      uint32
	cancelled bool
}

// New creates a tasklet. runs==0 means no run limit. A nil clock uses
// the wall clock.
func New(interval time.Duration, runs uint32, clock Clock) *Tasklet {
	if clock == nil {
		clock = time.Now
	}
	return &Tasklet{interval: interval, runs: runs, clock: clock}
}

// Ready reports whether a run is due and consumes it. The first call
// after creation or Reset fires immediately and arms the deadline.
func (t *Tasklet) Ready() bool {
	if t.cancelled || t.limitReached() {
		return false
	}
	now := t.clock()
	if !t.armed {
		t.armed = true
		t.next = now.Add(t.interval)
		t.done++
		return true
	}
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	t.done++
	return true
}

func (t *Tasklet) limitReached() bool {
	return t.runs != 0 && t.done >= t.runs
}

// Exhausted reports that no further runs will happen.
func (t *Tasklet) Exhausted() bool {
	return t.cancelled || t.limitReached()
}

// Runs returns how many times Ready has fired.
func (t *Tasklet) Runs() uint32 { return t.done }

// Reset rewinds the tasklet to its initial state.
func (t *Tasklet) Reset() {
	t.armed = false
	t.done = 0
	t.cancelled = false
}

// Cancel stops the tasklet until the next Reset.
func (t *Tasklet) Cancel() { t.cancelled = true }
