// Package debounce coalesces bursts of events. Each Trigger returns a version
// token; the timer that carries the newest token is the only one allowed to
// fire, so a superseded timer is dropped rather than queued.
package debounce

import "time"

type Debouncer struct {
	delay   time.Duration
	version uint64
	fired   uint64
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger records an event and returns the token its timer must present.
func (d *Debouncer) Trigger() uint64 {
	d.version++
	return d.version
}

// Fire reports whether the timer carrying token should run the action. Only
// the latest token fires, and only once.
func (d *Debouncer) Fire(token uint64) bool {
	if token != d.version || d.fired == token {
		return false
	}
	d.fired = token
	return true
}

// Cancel invalidates any scheduled timer.
func (d *Debouncer) Cancel() {
	d.version++
	d.fired = d.version
}

// Pending reports whether a triggered event has not fired yet.
func (d *Debouncer) Pending() bool {
	return d.version != d.fired
}
